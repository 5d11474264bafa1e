package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

func load(configPath string, out any) {
	if !fileExist(configPath) {
		panic(fmt.Sprintf("config file not exist, configPath=%v", configPath))
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	// 引擎配置允许热更（日志级别等）；规则数据不走这里，见 gamedata。
	v.OnConfigChange(func(e fsnotify.Event) {
		if err := v.Unmarshal(out); err != nil {
			panic(fmt.Errorf("viper unmarshal change config data: cast exception, err=%v", err))
		}
	})
	v.WatchConfig()

	if err := v.ReadInConfig(); err != nil {
		panic(err)
	}
	if err := v.Unmarshal(out); err != nil {
		panic(err)
	}
}
