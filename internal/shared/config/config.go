package config

import (
	"os"
	"path/filepath"
)

// Load 解析配置路径并加载进 out。
//
// 约定：
// 1) 传入 cfgName（相对/绝对路径）则优先使用；
// 2) 否则从当前目录开始向上查找 relPath（例如 `configs/conf.yml`）。
func Load(cfgName, relPath string, out any) {
	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	if cfgName != "" {
		if filepath.IsAbs(cfgName) {
			load(cfgName, out)
			return
		}
		load(filepath.Join(curDir, cfgName), out)
		return
	}

	load(findConfigUpward(curDir, relPath), out)
}

func findConfigUpward(startDir, relPath string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, relPath)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("config file not exist, searched " + relPath + " from: " + startDir)
		}
		dir = parent
	}
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
