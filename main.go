package main

import "github.com/jfmyers9/lyricist/cmd"

func main() {
	cmd.Execute()
}
