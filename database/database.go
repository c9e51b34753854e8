// Package database 基于 SQLite 的材料库。
//
// 维护一个电机数据库时，常用材料（例如绕组的铜）只需要定义一次，
// 之后就可以在所有电机之间复用。本包以名称为主键把材料的序列化
// 形式存入 SQLite 数据库。
package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	stemmaterial "github.com/StefanMathis/stem-material"
)

// ErrMaterialNotFound 表示数据库中没有给定名称的材料。
var ErrMaterialNotFound = errors.New("材料不存在")

// Store 材料库的 SQLite 连接。
type Store struct {
	conn *sqlx.DB
}

// Open 打开或创建给定路径下的材料库。
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("打开材料库失败: %w", err)
	}

	store := &Store{conn: conn}
	if err := store.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("初始化材料库失败: %w", err)
	}
	return store, nil
}

// Close 关闭数据库连接。
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS materials (
		name TEXT PRIMARY KEY,
		definition TEXT NOT NULL
	);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Save 把材料写入库中，同名材料被覆盖。含用户函数属性的材料无法
// 序列化，因而也无法保存。
func (s *Store) Save(material *stemmaterial.Material) error {
	if material.Name == "" {
		return fmt.Errorf("材料名称不能为空")
	}
	definition, err := json.Marshal(material)
	if err != nil {
		return fmt.Errorf("序列化材料 %s 失败: %w", material.Name, err)
	}
	_, err = s.conn.Exec(
		"INSERT OR REPLACE INTO materials (name, definition) VALUES (?, ?)",
		material.Name, string(definition),
	)
	if err != nil {
		return fmt.Errorf("保存材料 %s 失败: %w", material.Name, err)
	}
	return nil
}

// Load 按名称读取材料。
func (s *Store) Load(name string) (*stemmaterial.Material, error) {
	var definition string
	err := s.conn.Get(&definition, "SELECT definition FROM materials WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrMaterialNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("读取材料 %s 失败: %w", name, err)
	}

	var material stemmaterial.Material
	if err := json.Unmarshal([]byte(definition), &material); err != nil {
		return nil, fmt.Errorf("反序列化材料 %s 失败: %w", name, err)
	}
	return &material, nil
}

// List 返回库中所有材料的名称。
func (s *Store) List() ([]string, error) {
	var names []string
	if err := s.conn.Select(&names, "SELECT name FROM materials ORDER BY name"); err != nil {
		return nil, fmt.Errorf("列出材料失败: %w", err)
	}
	return names, nil
}

// Delete 按名称删除材料。材料不存在时返回 ErrMaterialNotFound。
func (s *Store) Delete(name string) error {
	result, err := s.conn.Exec("DELETE FROM materials WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("删除材料 %s 失败: %w", name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrMaterialNotFound, name)
	}
	return nil
}
