package main

import "github.com/TheVovchenskiy/sportify-tg-bot/cmd"

func main() {
	cmd.Execute()
}
