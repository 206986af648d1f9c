package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Exponential-Science/better-auth-hedera/pkg/hedera"
)

var (
	printfFn = fmt.Printf
	fatalfFn = log.Fatalf
)

func resolveArgs(args []string) (account string, network hedera.Network, err error) {
	if len(args) == 0 {
		return "", "", fmt.Errorf("usage: checksum <shard.realm.num[-checksum]> [mainnet|testnet|previewnet|devnet]")
	}
	network = hedera.Mainnet
	if len(args) > 1 {
		if network, err = hedera.ParseNetwork(args[1]); err != nil {
			return "", "", err
		}
	}
	return args[0], network, nil
}

func main() {
	account, network, err := resolveArgs(os.Args[1:])
	if err != nil {
		fatalfFn("%v", err)
		return
	}

	out, err := hedera.Validate(network, account)
	if err != nil {
		fatalfFn("Failed to validate %s: %v", account, err)
		return
	}

	printfFn("Network: %s\n", network)
	printfFn("Address: %s\n", out.CanonicalWithChecksum)
	printfFn("Status: %s\n", out.Status)
}
