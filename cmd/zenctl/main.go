// Command zenctl is a small operator tool for the scoring service: it
// registers accounts and fetches tokens over the HTTP API, prompting for the
// password without echoing it.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

func main() {

	serverURL := flag.String("s", "http://localhost:8080", "server base URL")
	username := flag.String("u", "", "username")
	flag.Parse()

	if *username == "" || flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: zenctl [-s url] -u username <register|token>\n")
		os.Exit(2)
	}

	password, err := promptPassword()
	if err != nil {
		log.Fatalf("password prompt error: %v", err)
	}

	base := strings.TrimRight(*serverURL, "/")

	switch flag.Arg(0) {
	case "register":
		err = register(base, *username, password)
	case "token":
		err = token(base, *username, password)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", flag.Arg(0))
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("%v", err)
	}
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func register(base, username, password string) error {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return err
	}

	resp, err := http.Post(base+"/api/users", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("registration failed: %s: %s", resp.Status, payload)
	}

	fmt.Printf("registered: %s\n", payload)
	return nil
}

func token(base, username, password string) error {
	req, err := http.NewRequest(http.MethodGet, base+"/api/token", nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(username, password)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed: %s: %s", resp.Status, payload)
	}

	fmt.Printf("%s\n", payload)
	return nil
}
