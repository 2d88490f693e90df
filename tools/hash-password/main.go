package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/md-rashed-zaman/costcalc/libs/auth"
)

func main() {
	username := flag.String("username", "admin", "admin username for the generated SQL")
	flag.Parse()

	password := "admin123"
	if flag.NArg() > 0 {
		password = flag.Arg(0)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		fatal(err.Error())
	}

	fmt.Println(hash)
	fmt.Fprintf(os.Stderr, "\nINSERT INTO admins (username, password_hash) VALUES ('%s', '%s')\n"+
		"ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash;\n", *username, hash)
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
