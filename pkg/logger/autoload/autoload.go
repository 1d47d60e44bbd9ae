// Package autoload initializes the global logger from the environment on
// import. Blank-import it from main.
package autoload

import (
	"github.com/kelseyhightower/envconfig"

	logx "github.com/vyapaarai/insight-engine/pkg/logger"
)

func init() {
	var conf logx.Config
	if err := envconfig.Process("LOG", &conf); err != nil {
		logx.Init()
		return
	}
	logx.Init(conf)
}
