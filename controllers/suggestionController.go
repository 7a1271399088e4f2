package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SuggestionController is thin glue around a hosted text-generation API:
// it formats the group's preferences into a prompt, sends it off and hands
// the text back. No orchestration beyond that.
type SuggestionController struct {
	apiURL string
	apiKey string
	model  string
	client *http.Client
}

func NewSuggestionController() *SuggestionController {
	return &SuggestionController{
		apiURL: os.Getenv("SUGGESTION_API_URL"),
		apiKey: os.Getenv("SUGGESTION_API_KEY"),
		model:  os.Getenv("SUGGESTION_MODEL"),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type suggestionRequest struct {
	Dietary_restrictions string `json:"dietary_restrictions"`
	Budget               string `json:"budget"`
	Cuisines             string `json:"cuisines"`
	Popularity           string `json:"popularity"`
	User_preferences     string `json:"user_preferences"`
}

type completionRequest struct {
	Model     string `json:"model,omitempty"`
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

func buildSuggestionPrompt(req suggestionRequest) string {
	var b strings.Builder
	b.WriteString("Suggest restaurants and dishes based on the following criteria:\n\n")
	fmt.Fprintf(&b, "Dietary Restrictions: %s\n", req.Dietary_restrictions)
	fmt.Fprintf(&b, "Budget: %s\n", req.Budget)
	fmt.Fprintf(&b, "Cuisines: %s\n", req.Cuisines)
	fmt.Fprintf(&b, "Popularity: %s\n", req.Popularity)
	fmt.Fprintf(&b, "User Preferences: %s\n\n", req.User_preferences)
	b.WriteString("Please provide a list of restaurant and dish suggestions that meet these criteria.\n")
	return b.String()
}

func (ctrl *SuggestionController) GetSuggestions() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ctrl.apiURL == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "suggestion service is not configured"})
			return
		}

		var req suggestionRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		body, err := json.Marshal(completionRequest{
			Model:     ctrl.model,
			Prompt:    buildSuggestionPrompt(req),
			MaxTokens: 512,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		httpReq, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, ctrl.apiURL, bytes.NewReader(body))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if ctrl.apiKey != "" {
			httpReq.Header.Set("Authorization", "Bearer "+ctrl.apiKey)
		}

		resp, err := ctrl.client.Do(httpReq)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "suggestion service is unavailable"})
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			c.JSON(http.StatusBadGateway, gin.H{"error": fmt.Sprintf("suggestion service returned status %d", resp.StatusCode)})
			return
		}

		var completion completionResponse
		if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not parse suggestion response"})
			return
		}
		if len(completion.Choices) == 0 {
			c.JSON(http.StatusBadGateway, gin.H{"error": "suggestion service returned no suggestions"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"suggestions": strings.TrimSpace(completion.Choices[0].Text)})
	}
}
