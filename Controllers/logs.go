package Controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// logFilePath matches middleware.DefaultLogConfig.
const logFilePath = "logs/requests.log"

// LogEntry mirrors the JSON lines the request-logging middleware writes.
type LogEntry struct {
	Timestamp     time.Time     `json:"timestamp"`
	RequestID     string        `json:"request_id"`
	Method        string        `json:"method"`
	Path          string        `json:"path"`
	Status        int           `json:"status"`
	Latency       time.Duration `json:"latency"`
	IP            string        `json:"ip"`
	UserAgent     string        `json:"user_agent"`
	RequestBody   interface{}   `json:"request_body,omitempty"`
	Error         string        `json:"error,omitempty"`
	UserID        interface{}   `json:"user_id,omitempty"`
	ContentLength int           `json:"content_length"`
}

// LogGroup represents a group of logs by path
type LogGroup struct {
	Path        string     `json:"path"`
	Method      string     `json:"method"`
	Count       int        `json:"count"`
	AvgLatency  float64    `json:"avg_latency_ms"`
	MinLatency  float64    `json:"min_latency_ms"`
	MaxLatency  float64    `json:"max_latency_ms"`
	SuccessRate float64    `json:"success_rate"`
	Logs        []LogEntry `json:"logs"`
}

// LogsResponse represents the response structure for logs API
type LogsResponse struct {
	Groups      []LogGroup `json:"groups"`
	TotalLogs   int        `json:"total_logs"`
	TotalGroups int        `json:"total_groups"`
	Page        int        `json:"page"`
	PageSize    int        `json:"page_size"`
	TotalPages  int        `json:"total_pages"`
	DateFrom    time.Time  `json:"date_from"`
	DateTo      time.Time  `json:"date_to"`
}

// logDateRange parses date_from/date_to query params, defaulting to today.
func logDateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	dateFromStr := c.Query("date_from", "")
	dateToStr := c.Query("date_to", "")

	if dateFromStr == "" && dateToStr == "" {
		now := time.Now()
		dateFrom := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		dateTo := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		return dateFrom, dateTo, nil
	}

	dateFrom := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	if dateFromStr != "" {
		parsed, err := time.Parse("2006-01-02", dateFromStr)
		if err != nil {
			return dateFrom, time.Time{}, fmt.Errorf("invalid date_from format, use YYYY-MM-DD")
		}
		dateFrom = parsed
	}

	dateTo := time.Now()
	if dateToStr != "" {
		parsed, err := time.Parse("2006-01-02", dateToStr)
		if err != nil {
			return dateFrom, dateTo, fmt.Errorf("invalid date_to format, use YYYY-MM-DD")
		}
		dateTo = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 23, 59, 59, 999999999, parsed.Location())
	}

	return dateFrom, dateTo, nil
}

// GetLogs retrieves logs with pagination, date filtering, and grouping
func GetLogs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))
	pathFilter := c.Query("path", "")
	methodFilter := c.Query("method", "")
	statusFilter := c.Query("status", "")

	dateFrom, dateTo, err := logDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 1000 {
		pageSize = 50
	}

	logs, err := readLogsFromFile(logFilePath, dateFrom, dateTo)
	if err != nil {
		log.Printf("Error reading logs: %v", err)
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to read logs",
		})
	}

	filteredLogs := filterLogs(logs, pathFilter, methodFilter, statusFilter)
	groups := groupLogsByPath(filteredLogs)

	totalGroups := len(groups)
	totalPages := (totalGroups + pageSize - 1) / pageSize
	startIndex := (page - 1) * pageSize
	endIndex := startIndex + pageSize

	if startIndex >= totalGroups {
		startIndex = totalGroups
	}
	if endIndex > totalGroups {
		endIndex = totalGroups
	}

	var paginatedGroups []LogGroup
	if startIndex < totalGroups {
		paginatedGroups = groups[startIndex:endIndex]
	}

	totalLogs := 0
	for _, group := range groups {
		totalLogs += len(group.Logs)
	}

	return c.JSON(LogsResponse{
		Groups:      paginatedGroups,
		TotalLogs:   totalLogs,
		TotalGroups: totalGroups,
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
	})
}

// readLogsFromFile reads logs from the specified file and filters by date range
func readLogsFromFile(filePath string, dateFrom, dateTo time.Time) ([]LogEntry, error) {
	file, err := os.OpenFile(filePath, os.O_RDONLY, 0666)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	var logs []LogEntry
	lines := strings.Split(string(content), "\n")

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var logEntry LogEntry
		if err := json.Unmarshal([]byte(line), &logEntry); err != nil {
			// Skip invalid JSON lines
			continue
		}

		if logEntry.Timestamp.After(dateFrom) && logEntry.Timestamp.Before(dateTo) {
			logs = append(logs, logEntry)
		}
	}

	return logs, nil
}

// filterLogs filters logs by path, method, and status
func filterLogs(logs []LogEntry, pathFilter, methodFilter, statusFilter string) []LogEntry {
	var filtered []LogEntry

	for _, entry := range logs {
		if pathFilter != "" && !strings.Contains(strings.ToLower(entry.Path), strings.ToLower(pathFilter)) {
			continue
		}

		if methodFilter != "" && !strings.EqualFold(entry.Method, methodFilter) {
			continue
		}

		if statusFilter != "" {
			status, err := strconv.Atoi(statusFilter)
			if err == nil && entry.Status != status {
				continue
			}
		}

		filtered = append(filtered, entry)
	}

	return filtered
}

// groupLogsByPath groups logs by path and calculates statistics
func groupLogsByPath(logs []LogEntry) []LogGroup {
	groupMap := make(map[string]*LogGroup)

	for _, entry := range logs {
		key := fmt.Sprintf("%s %s", entry.Method, entry.Path)
		latencyMs := float64(entry.Latency.Microseconds()) / 1000.0

		group, exists := groupMap[key]
		if !exists {
			successRate := 0.0
			if entry.Status >= 200 && entry.Status < 300 {
				successRate = 1.0
			}
			groupMap[key] = &LogGroup{
				Path:        entry.Path,
				Method:      entry.Method,
				Count:       1,
				AvgLatency:  latencyMs,
				MinLatency:  latencyMs,
				MaxLatency:  latencyMs,
				SuccessRate: successRate,
				Logs:        []LogEntry{entry},
			}
			continue
		}

		group.Count++
		group.Logs = append(group.Logs, entry)
		group.AvgLatency = (group.AvgLatency*float64(group.Count-1) + latencyMs) / float64(group.Count)

		if latencyMs < group.MinLatency || group.MinLatency == 0 {
			group.MinLatency = latencyMs
		}
		if latencyMs > group.MaxLatency {
			group.MaxLatency = latencyMs
		}

		if entry.Status >= 200 && entry.Status < 300 {
			group.SuccessRate = (group.SuccessRate*float64(group.Count-1) + 1.0) / float64(group.Count)
		} else {
			group.SuccessRate = (group.SuccessRate * float64(group.Count-1)) / float64(group.Count)
		}
	}

	var groups []LogGroup
	for _, group := range groupMap {
		groups = append(groups, *group)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})

	return groups
}

// GetLogsByPath retrieves logs for a specific path
func GetLogsByPath(c *fiber.Ctx) error {
	path := c.Params("path")
	if path == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "Path parameter is required",
		})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))

	dateFrom, dateTo, err := logDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	logs, err := readLogsFromFile(logFilePath, dateFrom, dateTo)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to read logs",
		})
	}

	var pathLogs []LogEntry
	for _, entry := range logs {
		if strings.Contains(entry.Path, path) {
			pathLogs = append(pathLogs, entry)
		}
	}

	// Newest first
	sort.Slice(pathLogs, func(i, j int) bool {
		return pathLogs[i].Timestamp.After(pathLogs[j].Timestamp)
	})

	totalLogs := len(pathLogs)
	totalPages := (totalLogs + pageSize - 1) / pageSize
	startIndex := (page - 1) * pageSize
	endIndex := startIndex + pageSize

	if startIndex >= totalLogs {
		startIndex = totalLogs
	}
	if endIndex > totalLogs {
		endIndex = totalLogs
	}

	var paginatedLogs []LogEntry
	if startIndex < totalLogs {
		paginatedLogs = pathLogs[startIndex:endIndex]
	}

	return c.JSON(fiber.Map{
		"logs":        paginatedLogs,
		"total_logs":  totalLogs,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": totalPages,
		"path":        path,
		"date_from":   dateFrom,
		"date_to":     dateTo,
	})
}

// GetLogStats returns statistics about logs
func GetLogStats(c *fiber.Ctx) error {
	dateFrom, dateTo, err := logDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	logs, err := readLogsFromFile(logFilePath, dateFrom, dateTo)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to read logs",
		})
	}

	var totalRequests, successfulRequests, errorRequests int
	var totalLatency time.Duration
	var minLatency, maxLatency time.Duration
	methodStats := make(map[string]int)
	statusStats := make(map[int]int)
	pathStats := make(map[string]int)

	for i, entry := range logs {
		totalRequests++

		if entry.Status >= 200 && entry.Status < 300 {
			successfulRequests++
		} else if entry.Status >= 400 {
			errorRequests++
		}

		totalLatency += entry.Latency

		if i == 0 || entry.Latency < minLatency {
			minLatency = entry.Latency
		}
		if entry.Latency > maxLatency {
			maxLatency = entry.Latency
		}

		methodStats[entry.Method]++
		statusStats[entry.Status]++
		pathStats[entry.Path]++
	}

	avgLatency := time.Duration(0)
	if totalRequests > 0 {
		avgLatency = totalLatency / time.Duration(totalRequests)
	}

	successRate := 0.0
	if totalRequests > 0 {
		successRate = float64(successfulRequests) / float64(totalRequests) * 100
	}

	var topPaths []fiber.Map
	for path, count := range pathStats {
		topPaths = append(topPaths, fiber.Map{
			"path":  path,
			"count": count,
		})
	}
	sort.Slice(topPaths, func(i, j int) bool {
		return topPaths[i]["count"].(int) > topPaths[j]["count"].(int)
	})
	if len(topPaths) > 10 {
		topPaths = topPaths[:10]
	}

	return c.JSON(fiber.Map{
		"total_requests":      totalRequests,
		"successful_requests": successfulRequests,
		"error_requests":      errorRequests,
		"success_rate":        successRate,
		"avg_latency_ms":      float64(avgLatency.Microseconds()) / 1000.0,
		"min_latency_ms":      float64(minLatency.Microseconds()) / 1000.0,
		"max_latency_ms":      float64(maxLatency.Microseconds()) / 1000.0,
		"method_stats":        methodStats,
		"status_stats":        statusStats,
		"top_paths":           topPaths,
		"date_from":           dateFrom,
		"date_to":             dateTo,
	})
}
