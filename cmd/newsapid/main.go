package main

import "github.com/news-assignment/newsapi/cmd/newsapid/cmd"

func main() {
	cmd.Execute()
}
