package main

import "github.com/zostay/go-mime/tools/pm/cmd"

func main() {
	cmd.Execute()
}
