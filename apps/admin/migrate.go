package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) migrate() error {
	if err := cli.migrateFunc(context.Background()); err != nil {
		return err
	}
	fmt.Println("record store schema up to date")
	return nil
}
