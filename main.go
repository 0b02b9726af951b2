package main

import "github.com/zinc-sig/firebuild-cache/cmd"

func main() {
	cmd.Execute()
}
