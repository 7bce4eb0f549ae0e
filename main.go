package main

import "wechat-articles/cmd"

func main() {
	cmd.Execute()
}
