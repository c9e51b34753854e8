// Package load 从 xlsx 数据手册读取材料测量数据。
//
// 叠片制造商的数据手册通常以表格形式给出磁化曲线和铁损特性曲线，
// 本包把这类表格转换成 permeability 和 ironloss 包的输入数据。
//
// 磁化曲线工作表的格式: 第一行为表头，之后每行两列，分别是磁场
// 强度 (A/m) 和磁通密度 (T)。
//
// 损耗数据工作簿的格式: 每张工作表对应一个测量频率，A1 为
// "frequency"、B1 为频率值; 第二行为表头; 之后每行两列，分别是
// 磁通密度幅值 (T) 和比损耗 (W/kg)。单元格内容可以是裸数字，也
// 可以是带单位的标量（例如 "0.5 T"）。
package load

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/StefanMathis/stem-material/ironloss"
	"github.com/StefanMathis/stem-material/permeability"
	"github.com/StefanMathis/stem-material/types"
)

// ErrInvalidFileFormat 表示 xlsx 文件的内容不符合预期的表格格式。
var ErrInvalidFileFormat = errors.New("无效的文件格式")

// parseCell 解析单元格内容: 裸数字或带单位的标量。
func parseCell(cell string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err == nil {
		return value, nil
	}
	q, err := types.ParseQuantity(cell)
	if err != nil {
		return 0, fmt.Errorf("%w: 无法解析单元格内容 %q", ErrInvalidFileFormat, cell)
	}
	return q.Value, nil
}

// MagnetizationCurve 从 xlsx 数据手册的给定工作表读取磁化曲线。
func MagnetizationCurve(path, sheet string, ironFillFactor float64) (*permeability.MagnetizationCurve, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("打开数据手册 %s 失败: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("读取工作表 %s 失败: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: 工作表 %s 没有数据行", ErrInvalidFileFormat, sheet)
	}

	fieldStrength := make([]float64, 0, len(rows)-1)
	fluxDensity := make([]float64, 0, len(rows)-1)

	// 第一行是表头
	for i, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("%w: 工作表 %s 第 %d 行应有两列", ErrInvalidFileFormat, sheet, i+2)
		}
		h, err := parseCell(row[0])
		if err != nil {
			return nil, fmt.Errorf("工作表 %s 第 %d 行: %w", sheet, i+2, err)
		}
		b, err := parseCell(row[1])
		if err != nil {
			return nil, fmt.Errorf("工作表 %s 第 %d 行: %w", sheet, i+2, err)
		}
		fieldStrength = append(fieldStrength, h)
		fluxDensity = append(fluxDensity, b)
	}

	return permeability.NewMagnetizationCurve(fieldStrength, fluxDensity, ironFillFactor)
}

// IronLossData 从 xlsx 数据手册读取完整的损耗数据集，工作簿的
// 每张工作表对应一个测量频率。
func IronLossData(path string) (ironloss.IronLossData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("打开数据手册 %s 失败: %w", path, err)
	}
	defer f.Close()

	var data ironloss.IronLossData
	for _, sheet := range f.GetSheetList() {
		characteristic, err := lossCharacteristic(f, sheet)
		if err != nil {
			return nil, err
		}
		data = append(data, characteristic)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: 工作簿 %s 没有损耗特性工作表", ErrInvalidFileFormat, path)
	}
	return data, nil
}

// lossCharacteristic 读取单张工作表的损耗特性曲线。
func lossCharacteristic(f *excelize.File, sheet string) (ironloss.IronLossCharacteristic, error) {
	var characteristic ironloss.IronLossCharacteristic

	rows, err := f.GetRows(sheet)
	if err != nil {
		return characteristic, fmt.Errorf("读取工作表 %s 失败: %w", sheet, err)
	}
	if len(rows) < 3 || len(rows[0]) < 2 {
		return characteristic, fmt.Errorf("%w: 工作表 %s 缺少频率行或数据行", ErrInvalidFileFormat, sheet)
	}
	if !strings.EqualFold(strings.TrimSpace(rows[0][0]), "frequency") {
		return characteristic, fmt.Errorf("%w: 工作表 %s 的 A1 应为 \"frequency\", 实际 %q", ErrInvalidFileFormat, sheet, rows[0][0])
	}
	frequency, err := parseCell(rows[0][1])
	if err != nil {
		return characteristic, fmt.Errorf("工作表 %s 的频率值: %w", sheet, err)
	}

	pairs := make([]ironloss.FluxDensityLossPair, 0, len(rows)-2)

	// 第二行是表头
	for i, row := range rows[2:] {
		if len(row) == 0 {
			continue
		}
		if len(row) < 2 {
			return characteristic, fmt.Errorf("%w: 工作表 %s 第 %d 行应有两列", ErrInvalidFileFormat, sheet, i+3)
		}
		b, err := parseCell(row[0])
		if err != nil {
			return characteristic, fmt.Errorf("工作表 %s 第 %d 行: %w", sheet, i+3, err)
		}
		p, err := parseCell(row[1])
		if err != nil {
			return characteristic, fmt.Errorf("工作表 %s 第 %d 行: %w", sheet, i+3, err)
		}
		pairs = append(pairs, ironloss.NewFluxDensityLossPair(b, p))
	}

	return ironloss.NewIronLossCharacteristic(frequency, pairs), nil
}
