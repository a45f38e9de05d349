package main

import (
	"magiccards.GO/cmd"
	"magiccards.GO/config"
)

func main() {
	config.LoadEnv()
	config.InitRedis()
	cmd.Execute()
}
