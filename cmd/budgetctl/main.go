package main

func main() { Execute() }
