package engineconfig

import (
	"Brassworks/internal/shared/config"
)

const defaultConfigRelPath = "configs/conf.yml"

var Conf Config

func Load(cfgName string) {
	config.Load(cfgName, defaultConfigRelPath, &Conf)
}
