package main

import (
	"fmt"
	"log"
	"os"

	cmdTracker "trucker-client/cmd/tracker"
	"trucker-client/internal/common/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "track":
		if len(os.Args) != 3 {
			usage()
			os.Exit(2)
		}
		cmdTracker.Track(cfg, os.Args[2])
	case "dispatch":
		if len(os.Args) != 7 {
			usage()
			os.Exit(2)
		}
		cmdTracker.Dispatch(cfg, os.Args[2], os.Args[3], os.Args[4], os.Args[5], os.Args[6])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  trucker-client track <run-id>")
	fmt.Fprintln(os.Stderr, "  trucker-client dispatch <order-id> <slot-id> <equipment-id> <document-id> <insurance-id>")
}
