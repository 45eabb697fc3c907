package main

import "jukebox/cmd"

func main() {
	cmd.Execute()
}
