package main

import (
	"flag"
	"fmt"
	"log"

	stemmaterial "github.com/StefanMathis/stem-material"
	"github.com/StefanMathis/stem-material/database"
	"github.com/StefanMathis/stem-material/ironloss"
	"github.com/StefanMathis/stem-material/load"
	"github.com/StefanMathis/stem-material/permeability"
	"github.com/StefanMathis/stem-material/types"
)

var (
	datasheet = flag.String("datasheet", "", "磁化曲线数据手册 (xlsx)")
	sheet     = flag.String("sheet", "Sheet1", "磁化曲线所在的工作表")
	losses    = flag.String("losses", "", "损耗数据手册 (xlsx)")
	fill      = flag.Float64("fill", 0.95, "铁芯填充系数")
	dbPath    = flag.String("db", "", "材料库路径 (可选)")
	name      = flag.String("name", "M270-50A", "材料名称")
)

func main() {
	flag.Parse()

	material := stemmaterial.NewMaterial(*name)

	if *datasheet != "" {
		curve, err := load.MagnetizationCurve(*datasheet, *sheet, *fill)
		if err != nil {
			log.Fatal(err)
		}
		model, err := permeability.FromMagnetization(curve)
		if err != nil {
			log.Fatal(err)
		}
		material.RelativePermeability = permeability.ModelPermeability(model)

		for _, b := range []float64{0.5, 1.0, 1.5, 2.0} {
			q := types.NewQuantity(b, types.FluxDensity)
			fmt.Printf("µr(%v) = %.2f\n", q, model.Get(q))
		}
	}

	if *losses != "" {
		data, err := load.IronLossData(*losses)
		if err != nil {
			log.Fatal(err)
		}
		model, err := ironloss.Fit(data)
		if err != nil {
			log.Fatal(err)
		}
		material.IronLosses = ironloss.JordanLosses(model)

		fmt.Printf("kh = %v, kec = %v\n", model.HysteresisCoefficient, model.EddyCurrentCoefficient)
		fmt.Printf("p(1.5 T, 50 Hz) = %.3f W/kg\n", model.Losses(1.5, 50.0))
	}

	if *dbPath != "" {
		if err := storeMaterial(*dbPath, material); err != nil {
			log.Fatal(err)
		}
	}
}

// storeMaterial 把材料存入材料库并列出库中的所有材料。
func storeMaterial(path string, material *stemmaterial.Material) error {
	store, err := database.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(material); err != nil {
		return err
	}
	names, err := store.List()
	if err != nil {
		return err
	}
	fmt.Printf("材料库: %v\n", names)
	return nil
}
