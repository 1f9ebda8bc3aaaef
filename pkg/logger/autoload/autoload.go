// Package autoload initializes the global logger from the environment as a
// side effect of being imported. Import it blank from main.
package autoload

import (
	configx "github.com/puntoventa/backend/pkg/config"
	logx "github.com/puntoventa/backend/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
