package main

import "github.com/felixonline247/opolo-cbt-app/cmd"

func main() {
	cmd.Execute()
}
