// Package embedded 提供编译进二进制的数据文件访问接口
//
// 所有预设常量都放在 data/ 目录下并通过 go:embed 打包，
// 桌面端、终端版和移动端共享同一份数据，无需在运行时读取磁盘。
package embedded

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed data
var dataFS embed.FS

// ProfilesPath 内置烟花预设文件路径
const ProfilesPath = "data/profiles.yaml"

// normalize 统一路径格式（正斜杠、去掉 "./" 前缀）并校验前缀
func normalize(path string) (string, error) {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")

	if !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// Open 打开嵌入的文件
func Open(path string) (fs.File, error) {
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return dataFS.Open(p)
}

// ReadFile 读取嵌入文件的全部内容
func ReadFile(path string) ([]byte, error) {
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, p)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 在嵌入数据中匹配文件
func Glob(pattern string) ([]string, error) {
	p, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(dataFS, p)
}
