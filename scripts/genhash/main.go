// Command genhash prints bcrypt hashes for admin passwords, optionally as an
// INSERT statement for admin_users.
//
//	go run ./scripts/genhash -email ops@example.com -name Ops -role admin 'secret'
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "", "emit an INSERT for this admin email")
	name := flag.String("name", "", "display name for the INSERT")
	role := flag.String("role", "admin", "admin, recruiter or hiring_manager")
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: genhash [-email addr -name name -role role] password...")
		os.Exit(2)
	}

	for _, pass := range flag.Args() {
		hash, err := bcrypt.GenerateFromPassword([]byte(pass), *cost)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}

		if *email == "" {
			fmt.Println(string(hash))
			continue
		}
		fmt.Printf("INSERT INTO admin_users (id, email, name, role, password_hash) VALUES ('%s', '%s', '%s', '%s', '%s');\n",
			uuid.NewString(), sqlQuote(strings.ToLower(*email)), sqlQuote(*name), sqlQuote(*role), string(hash))
	}
}

func sqlQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
