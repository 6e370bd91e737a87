package main

import (
	"github.com/teamscope-ai/teamscope/backend/internal/server"
	"github.com/teamscope-ai/teamscope/backend/internal/util"
	"github.com/teamscope-ai/teamscope/backend/pkg/logger"
	"github.com/teamscope-ai/teamscope/backend/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.New(console.Params{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
