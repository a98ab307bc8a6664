package main

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"ExamSeatAllocator/internal/bootstrap"
	pkg "ExamSeatAllocator/pkg/routes"
)

func main() {
	bootstrap.LoadEnv()

	app := fx.New(
		pkg.EchoModules,
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
	)

	app.Run()
}
