package main

import "github.com/datawarehouse/dw-s3-go/internal/cli"

func main() {
	cli.Execute()
}
