package main

import "github.com/frahmantamala/talento-plus/cmd"

func main() {
	cmd.Execute()
}
