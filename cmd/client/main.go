package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/dmitrijs2005/accountsvc/internal/client/client"
)

func main() {

	addr := flag.String("a", "127.0.0.1:50051", "server address")
	username := flag.String("u", "", "username")
	password := flag.String("p", "", "password (prompted if omitted)")
	flag.Parse()

	ctx := context.Background()

	pw := *password
	if pw == "" {
		fmt.Fprint(os.Stderr, "Enter password: ")
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			log.Fatalf("read password: %v", err)
		}
		pw = string(b)
	}

	c, err := client.NewAccountsClientService(*addr)
	if err != nil {
		log.Fatalf("client init: %v", err)
	}
	defer c.Close()

	if err := c.Login(ctx, *username, pw); err != nil {
		log.Fatalf("login: %v", err)
	}

	me, err := c.Me(ctx)
	if err != nil {
		log.Fatalf("me: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(me); err != nil {
		log.Fatalf("encode: %v", err)
	}
}
