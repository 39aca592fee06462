package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// sampleDocument is a tiny CSV so the smoke test does not depend on local files.
const sampleDocument = "quarter,revenue\nQ1,100\nQ2,125\nQ3,150\n"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if key := os.Getenv("GOOGLE_GEMINI_API_KEY"); key != "" {
		req.Header.Set("X-Goog-Api-Key", key)
	}

	client := &http.Client{} // No timeout, the import wait can take minutes
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func uploadDocument(url, filename, content string) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("document", filename)
	if err != nil {
		return nil, nil, err
	}
	if _, err := part.Write([]byte(content)); err != nil {
		return nil, nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequest("POST", baseURL+url, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if key := os.Getenv("GOOGLE_GEMINI_API_KEY"); key != "" {
		req.Header.Set("X-Goog-Api-Key", key)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func extractDataField(body []byte, field string) string {
	var res map[string]interface{}
	json.Unmarshal(body, &res)
	if data, ok := res["data"].(map[string]interface{}); ok {
		if v, ok := data[field].(string); ok {
			return v
		}
	}
	return ""
}

func main() {
	color.Cyan("🚀 Starting Document Chat API Test\n")

	// 1. Create Session
	color.Yellow("\n[CHAT] 1. Create Session")
	resp, body, err := sendRequest("POST", "/chat/v1/session", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var createResp map[string]interface{}
	json.Unmarshal(body, &createResp)
	prettyPrint(createResp)

	sessionID := extractDataField(body, "id")
	if sessionID == "" {
		color.Red("No session id in response, aborting")
		os.Exit(1)
	}
	fmt.Printf("Created Session ID: %s\n", sessionID)

	// 2. Upload Document (blocks until import confirms or wait budget runs out)
	color.Yellow("\n[CHAT] 2. Upload Document")
	resp, body, err = uploadDocument("/chat/v1/session/"+sessionID+"/document", "smoke_test.csv", sampleDocument)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var uploadResp map[string]interface{}
	json.Unmarshal(body, &uploadResp)
	prettyPrint(uploadResp)

	if warning := extractDataField(body, "warning"); warning != "" {
		color.Magenta("⚠️  %s", warning)
	}

	// 3. Ask a question grounded in the uploaded document
	color.Yellow("\n[CHAT] 3. Ask: 'What was the revenue in Q2?'")
	resp, body, err = sendRequest("POST", "/chat/v1/session/"+sessionID+"/ask",
		map[string]interface{}{"question": "What was the revenue in Q2?"})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var askResp map[string]interface{}
	json.Unmarshal(body, &askResp)
	prettyPrint(askResp)

	// 4. Follow-up that only makes sense with history
	color.Yellow("\n[CHAT] 4. Ask follow-up: 'And in the quarter after that?'")
	resp, body, err = sendRequest("POST", "/chat/v1/session/"+sessionID+"/ask",
		map[string]interface{}{"question": "And in the quarter after that?"})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var followResp map[string]interface{}
	json.Unmarshal(body, &followResp)
	prettyPrint(followResp)

	// 5. History
	color.Yellow("\n[CHAT] 5. Get History")
	resp, body, err = sendRequest("GET", "/chat/v1/session/"+sessionID+"/history", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var historyResp map[string]interface{}
	json.Unmarshal(body, &historyResp)
	prettyPrint(historyResp)

	// 6. State
	color.Yellow("\n[CHAT] 6. Get Session State")
	resp, body, err = sendRequest("GET", "/chat/v1/session/"+sessionID+"/state", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var stateResp map[string]interface{}
	json.Unmarshal(body, &stateResp)
	prettyPrint(stateResp)

	// 7. Delete
	color.Yellow("\n[CHAT] 7. Delete Session")
	resp, _, err = sendRequest("DELETE", "/chat/v1/session/"+sessionID, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	color.Cyan("\n✅ Document chat walkthrough finished")
}
