// Smoke exercises the API end-to-end against a running server: registers a
// driver, logs in, publishes a ride, and lists the open rides. Development
// tool only.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"os"
	"time"
)

type apiClient struct {
	baseURL    string
	httpClient *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Fatalf("failed to create cookie jar: %v", err)
	}
	return &apiClient{
		baseURL: baseURL + "/api",
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}
}

func (c *apiClient) post(path string, body interface{}, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", bytes.NewReader(raw))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("POST %s: status %d: %s", path, resp.StatusCode, data)
	}
	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}

func (c *apiClient) get(path string, out interface{}) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("GET %s: status %d: %s", path, resp.StatusCode, data)
	}
	return json.Unmarshal(data, out)
}

type ride struct {
	ID     string `json:"id"`
	From   string `json:"from"`
	To     string `json:"to"`
	Driver struct {
		Name   string  `json:"name"`
		Rating float64 `json:"rating"`
	} `json:"driver"`
	Price          float64 `json:"price"`
	AvailableSeats int     `json:"availableSeats"`
}

func main() {
	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	client := newAPIClient(apiURL)
	email := fmt.Sprintf("smoke_%d@example.com", time.Now().UnixNano()%1000000)

	log.Printf("registering driver %s", email)
	err := client.post("/auth/register", map[string]interface{}{
		"name":     "Smoke Driver",
		"email":    email,
		"phone":    "+994501112233",
		"role":     "driver",
		"password": "smokepass",
		"vehicle":  "Kia Optima",
	}, nil)
	if err != nil {
		log.Fatalf("register failed: %v", err)
	}

	log.Println("logging in")
	if err := client.post("/auth/login", map[string]string{
		"email":    email,
		"password": "smokepass",
	}, nil); err != nil {
		log.Fatalf("login failed: %v", err)
	}

	log.Println("creating ride")
	var created ride
	err = client.post("/rides/create", map[string]interface{}{
		"from":           "Bakı, 28 May",
		"to":             "Sumqayıt",
		"price":          5,
		"availableSeats": 3,
		"departureTime":  time.Now().Add(time.Hour).Format(time.RFC3339),
	}, &created)
	if err != nil {
		log.Fatalf("create ride failed: %v", err)
	}
	log.Printf("created ride %s", created.ID)

	var rides []ride
	if err := client.get("/rides", &rides); err != nil {
		log.Fatalf("list rides failed: %v", err)
	}

	fmt.Printf("%d open ride(s):\n", len(rides))
	for _, r := range rides {
		fmt.Printf("  %s → %s  %.0f AZN  %d seats  driver=%s (%.1f)\n",
			r.From, r.To, r.Price, r.AvailableSeats, r.Driver.Name, r.Driver.Rating)
	}

	if err := client.post("/auth/logout", map[string]string{}, nil); err != nil {
		log.Fatalf("logout failed: %v", err)
	}
	log.Println("smoke run complete")
}
