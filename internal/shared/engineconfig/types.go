package engineconfig

type Config struct {
	GameData string      `yaml:"gamedata" mapstructure:"gamedata"`
	Log      LogConfig   `yaml:"log" mapstructure:"log"`
	Logic    LogicConfig `yaml:"logic" mapstructure:"logic"`
}

type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

type LogicConfig struct {
	// AllowDrainMarkets 打开后“抽干市场”才会成为可选行动；默认关闭。
	AllowDrainMarkets bool `yaml:"allow_drain_markets" mapstructure:"allow_drain_markets"`
	// Tutorial 打开后只打运河时代，结束时加教学局奖励计分。
	Tutorial bool `yaml:"tutorial" mapstructure:"tutorial"`
	// Seed 固定随机种子（0 表示随机），复盘与测试用。
	Seed int64 `yaml:"seed" mapstructure:"seed"`
}
