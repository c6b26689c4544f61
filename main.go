package main

import "github.com/chshwong/calorie-sub012/cmd/calorie"

func main() {
	calorie.Execute()
}
