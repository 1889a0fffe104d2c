package main

import "rolo/windows"

func main() {
	windows.CreateMainWindow()
}
