// Command clustgen generates cluster orbits and basis functions from a
// YAML project file.
//
//	clustgen generate project.yaml -o tree.json --proto clust.txt --eci eci.in
//	clustgen show tree.json --config project.yaml --full
//	clustgen bset project.yaml -o basis.txt
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
