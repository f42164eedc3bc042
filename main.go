package main

import "github.com/KaramelBytes/channelstat/cmd"

func main() {
	cmd.Execute()
}
