package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "auth":
		handleAuth(args)
	case "lead":
		handleLead(args)
	case "stats":
		showStats()
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func handleAuth(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: crm auth <register|login|logout|who>")
		return
	}

	switch args[0] {
	case "register":
		registerUser(args[1:])
	case "login":
		loginUser(args[1:])
	case "logout":
		logoutUser()
	case "who":
		whoAmI()
	default:
		fmt.Printf("unknown auth command: %s\n", args[0])
	}
}

func handleLead(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: crm lead <list|get|add>")
		return
	}

	switch args[0] {
	case "list":
		listLeads()
	case "get":
		getLead(args[1:])
	case "add":
		addLead(args[1:])
	default:
		fmt.Printf("unknown lead command: %s\n", args[0])
	}
}

// envelope mirrors the API response shape
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func registerUser(args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "user email")
	password := fs.String("password", "", "password")
	role := fs.String("role", "agent", "role")
	mobile := fs.String("mobile", "", "mobile number")

	fs.Parse(args)

	if *name == "" || *email == "" || *password == "" || *mobile == "" {
		fmt.Println("Error: name, email, password, and mobile are required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]interface{}{
		"name":     *name,
		"email":    *email,
		"password": *password,
		"roles":    []string{*role},
		"mobileNo": *mobile,
	}

	var env envelope
	status, err := postJSON("/auth/register", payload, &env)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if status == http.StatusCreated {
		fmt.Printf("✓ User registered: %s\n", *email)
	} else {
		fmt.Printf("✗ Registration failed: %s\n", env.Message)
	}
}

func loginUser(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "user email")
	password := fs.String("password", "", "password")

	fs.Parse(args)

	if *email == "" || *password == "" {
		fmt.Println("Error: email and password are required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]string{"email": *email, "password": *password}
	data, _ := json.Marshal(payload)
	resp, err := http.Post(apiURL()+"/auth/login", "application/json", bytes.NewReader(data))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result struct {
		Success     bool   `json:"success"`
		Message     string `json:"message"`
		AccessToken string `json:"accessToken"`
	}
	json.NewDecoder(resp.Body).Decode(&result)

	if resp.StatusCode == http.StatusOK && result.AccessToken != "" {
		if err := saveToken(result.AccessToken); err != nil {
			fmt.Printf("Error saving token: %v\n", err)
			return
		}
		fmt.Printf("✓ Logged in as: %s\n", *email)
	} else {
		fmt.Printf("✗ Login failed: %s\n", result.Message)
	}
}

func logoutUser() {
	os.Remove(tokenFile())
	fmt.Println("✓ Logged out")
}

func whoAmI() {
	token := loadToken()
	if token == "" {
		fmt.Println("Not logged in")
		return
	}
	fmt.Printf("✓ Logged in (token: %s...)\n", token[:20])
}

func listLeads() {
	var env envelope
	status, err := getJSON("/leads/getall", &env)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if status != http.StatusOK {
		fmt.Printf("✗ %s\n", env.Message)
		return
	}

	var leads []struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Phone  string `json:"phone"`
		Source string `json:"source"`
		Status string `json:"status"`
	}
	json.Unmarshal(env.Data, &leads)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPHONE\tSOURCE\tSTATUS")
	for _, l := range leads {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", l.ID, l.Name, l.Phone, l.Source, l.Status)
	}
	w.Flush()
}

func getLead(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: crm lead get <lead-id>")
		return
	}

	var env envelope
	status, err := getJSON("/leads/getbyid/"+args[0], &env)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if status != http.StatusOK {
		fmt.Printf("✗ %s\n", env.Message)
		return
	}

	var pretty bytes.Buffer
	json.Indent(&pretty, env.Data, "", "  ")
	fmt.Println(pretty.String())
}

func addLead(args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "lead name")
	email := fs.String("email", "", "lead email")
	phone := fs.String("phone", "", "lead phone")
	source := fs.String("source", "Website", "lead source")
	leadStatus := fs.String("status", "", "lead status (optional)")

	fs.Parse(args)

	if *name == "" || *email == "" || *phone == "" {
		fmt.Println("Error: name, email, and phone are required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]string{
		"name":   *name,
		"email":  *email,
		"phone":  *phone,
		"source": *source,
	}
	if *leadStatus != "" {
		payload["status"] = *leadStatus
	}

	var env envelope
	status, err := postJSON("/leads/add", payload, &env)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if status == http.StatusCreated {
		fmt.Printf("✓ Lead created: %s\n", *name)
	} else {
		fmt.Printf("✗ %s\n", env.Message)
	}
}

func showStats() {
	var env envelope
	status, err := getJSON("/stats", &env)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if status != http.StatusOK {
		fmt.Printf("✗ %s\n", env.Message)
		return
	}

	var pretty bytes.Buffer
	json.Indent(&pretty, env.Data, "", "  ")
	fmt.Println(pretty.String())
}

// Helper functions
func apiURL() string {
	if url := os.Getenv("CRM_API"); url != "" {
		return url
	}
	return "http://localhost:8080/api/v1"
}

func postJSON(path string, payload interface{}, out *envelope) (int, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequest("POST", apiURL()+path, bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(req)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	json.NewDecoder(resp.Body).Decode(out)
	return resp.StatusCode, nil
}

func getJSON(path string, out *envelope) (int, error) {
	req, err := http.NewRequest("GET", apiURL()+path, nil)
	if err != nil {
		return 0, err
	}
	addAuthHeader(req)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	json.NewDecoder(resp.Body).Decode(out)
	return resp.StatusCode, nil
}

func tokenFile() string {
	home, _ := os.UserHomeDir()
	return home + "/.crm/token"
}

func saveToken(token string) error {
	home, _ := os.UserHomeDir()
	os.MkdirAll(home+"/.crm", 0700)
	return os.WriteFile(tokenFile(), []byte(token), 0600)
}

func loadToken() string {
	data, _ := os.ReadFile(tokenFile())
	return string(data)
}

func addAuthHeader(req *http.Request) {
	if token := loadToken(); token != "" {
		req.Header.Set("x-access-token", token)
	}
}

func printUsage() {
	fmt.Print(`CRM CLI

Usage:
  crm <command> [options]

Commands:
  auth   User authentication (register, login, logout, who)
  lead   Lead operations (list, get, add)
  stats  Show the dashboard summary
  help   Show this help message

Environment Variables:
  CRM_API    API endpoint (default: http://localhost:8080/api/v1)

Examples:
  crm auth register -name "Jo Smith" -email jo@example.com -password pass -mobile 5551234567
  crm auth login -email jo@example.com -password pass
  crm lead add -name "Sam Buyer" -email sam@example.com -phone 5559876543 -source Website
  crm lead list
  crm stats
`)
}
