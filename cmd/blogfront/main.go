package main

import "github.com/zfogg/blogfront/internal/cmd"

func main() {
	cmd.Execute()
}
