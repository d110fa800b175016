package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"civiconnect-be/models"
	"civiconnect-be/query"
	"civiconnect-be/session"
	"civiconnect-be/store"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestTimeout = 10 * time.Second

// IssueView is an issue plus the display fields derived from it.
type IssueView struct {
	models.Issue
	CategoryLabel   string              `json:"categoryLabel"`
	CategoryVariant models.BadgeVariant `json:"categoryVariant"`
	StatusLabel     string              `json:"statusLabel"`
	StatusVariant   models.BadgeVariant `json:"statusVariant"`
	Age             string              `json:"age"`
}

func newIssueView(issue models.Issue, now time.Time) IssueView {
	view := IssueView{
		Issue:           issue,
		CategoryLabel:   issue.Category.Label(),
		CategoryVariant: issue.Category.Variant(),
		StatusLabel:     issue.Status.Label(),
		StatusVariant:   issue.Status.Variant(),
	}
	if created, ok := models.ParseTimestamp(issue.CreatedAt); ok {
		view.Age = humanize.RelTime(created, now, "ago", "from now")
	}
	return view
}

func issueViews(issues []models.Issue, now time.Time) []IssueView {
	views := make([]IssueView, 0, len(issues))
	for _, issue := range issues {
		views = append(views, newIssueView(issue, now))
	}
	return views
}

type IssueController struct {
	issues store.IssueStore
	users  store.UserStore
	now    func() time.Time
}

func NewIssueController(issues store.IssueStore, users store.UserStore) *IssueController {
	return &IssueController{issues: issues, users: users, now: time.Now}
}

func (ic *IssueController) load(c *gin.Context) ([]models.Issue, bool) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	issues, err := ic.issues.ListIssues(ctx)
	if err != nil {
		log.Printf("Failed to list issues: %v", err)
		c.JSON(statusFor(err), gin.H{"error": "Failed to retrieve issues"})
		return nil, false
	}
	return issues, true
}

// GetAllIssues filters, sorts and paginates issues.
func (ic *IssueController) GetAllIssues(c *gin.Context) {
	criteria := query.Criteria{
		SearchTerm: c.Query("search"),
		Status:     c.DefaultQuery("status", query.All),
		Category:   c.DefaultQuery("category", query.All),
		SortBy:     query.ParseSortKey(c.DefaultQuery("sort", string(query.SortRecent))),
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	issues, ok := ic.load(c)
	if !ok {
		return
	}

	matched := query.Query(issues, criteria)
	paged, totalPages := query.Page(matched, page, limit)

	c.JSON(http.StatusOK, gin.H{
		"issues":      issueViews(paged, ic.now()),
		"totalIssues": len(matched),
		"totalPages":  totalPages,
		"currentPage": page,
	})
}

// RecentIssues returns the newest issues for the home page.
func (ic *IssueController) RecentIssues(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "6"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 6
	}
	issues, ok := ic.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, issueViews(query.Recent(issues, limit), ic.now()))
}

// GetIssueStats returns issue counts per status and category.
func (ic *IssueController) GetIssueStats(c *gin.Context) {
	issues, ok := ic.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, query.Count(issues))
}

// GetIssue retrieves an issue by its ID
func (ic *IssueController) GetIssue(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	issue, err := ic.issues.GetIssue(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			log.Printf("Failed to retrieve issue %s: %v", c.Param("id"), err)
			c.JSON(statusFor(err), gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}
	c.JSON(http.StatusOK, newIssueView(issue, ic.now()))
}

// tagList accepts tags either as a JSON list or as the comma-separated
// string the post form sends.
type tagList []string

func (t *tagList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = cleanTags(list)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("tags must be a string or a list of strings")
	}
	*t = cleanTags(strings.Split(s, ","))
	return nil
}

func cleanTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// CreateIssue handles the creation of a new issue
func (ic *IssueController) CreateIssue(c *gin.Context) {
	user, ok := session.FromGin(c).CurrentUser()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Title       string   `json:"title" binding:"required,max=200"`
		Description string   `json:"description" binding:"required,max=1000"`
		Category    string   `json:"category" binding:"required"`
		Location    string   `json:"location" binding:"required,max=200"`
		ImageURL    *string  `json:"imageUrl,omitempty" binding:"omitempty,url"`
		Latitude    *float64 `json:"latitude,omitempty" binding:"omitempty,latitude"`
		Longitude   *float64 `json:"longitude,omitempty" binding:"omitempty,longitude"`
		Tags        tagList  `json:"tags"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.IssueCategory(input.Category)
	if !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	now := models.FormatTimestamp(ic.now())
	issue := models.Issue{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		ImageURL:    input.ImageURL,
		Location:    models.Location{Address: input.Location},
		Category:    category,
		Status:      models.Open,
		UserID:      user.ID,
		UserName:    user.Name,
		UserAvatar:  user.Avatar,
		CreatedAt:   now,
		UpdatedAt:   now,
		Tags:        []string(input.Tags),
	}
	if issue.Tags == nil {
		issue.Tags = []string{}
	}
	if input.Latitude != nil && input.Longitude != nil {
		issue.Location.Lat = *input.Latitude
		issue.Location.Lng = *input.Longitude
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := ic.issues.CreateIssue(ctx, issue); err != nil {
		log.Printf("Failed to create issue: %v", err)
		c.JSON(statusFor(err), gin.H{"error": "Failed to create issue"})
		return
	}
	if err := ic.users.IncrementUserCounter(ctx, user.ID, store.IssuesSubmitted, 1); err != nil {
		log.Printf("Failed to update issue count for %s: %v", user.ID, err)
	}

	c.JSON(http.StatusCreated, newIssueView(issue, ic.now()))
}

// HandleLikeOnIssue toggles the user's like on an issue
func (ic *IssueController) HandleLikeOnIssue(c *gin.Context) {
	user, ok := session.FromGin(c).CurrentUser()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	likes, liked, err := ic.issues.ToggleLike(ctx, c.Param("id"), user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			log.Printf("Failed to toggle like on %s: %v", c.Param("id"), err)
			c.JSON(statusFor(err), gin.H{"error": "Failed to update like"})
		}
		return
	}

	message := "Like removed successfully"
	if liked {
		message = "Issue liked successfully"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"liked":   liked,
		"likes":   likes,
	})
}
