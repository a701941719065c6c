package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Service   string `json:"service"`
	Action    string `json:"action"`
	Message   string `json:"message"`
	Hostname  string `json:"hostname"`
	RequestID string `json:"request_id"`
	RunID     string `json:"run_id,omitempty"`
	Error     *struct {
		Msg   string `json:"msg"`
		Stack string `json:"stack"`
	} `json:"error,omitempty"`
}

var hostname, _ = os.Hostname()

var serviceName = "trucker-client"

// SetServiceName overrides the service label attached to every log line.
func SetServiceName(name string) {
	serviceName = name
}

func Info(action, message, requestID, runID string) {
	output(LogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		Level:     "INFO",
		Service:   serviceName,
		Action:    action,
		Message:   message,
		Hostname:  hostname,
		RequestID: requestID,
		RunID:     runID,
	})
}

func Debug(action, message, requestID, runID string) {
	output(LogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		Level:     "DEBUG",
		Service:   serviceName,
		Action:    action,
		Message:   message,
		Hostname:  hostname,
		RequestID: requestID,
		RunID:     runID,
	})
}

func Warn(action, message, requestID, runID, errMsg string) {
	entry := LogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		Level:     "WARN",
		Service:   serviceName,
		Action:    action,
		Message:   message,
		Hostname:  hostname,
		RequestID: requestID,
		RunID:     runID,
	}
	entry.Error = &struct {
		Msg   string `json:"msg"`
		Stack string `json:"stack"`
	}{Msg: errMsg}
	output(entry)
}

func Error(action, message, requestID, runID, errMsg string) {
	entry := LogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		Level:     "ERROR",
		Service:   serviceName,
		Action:    action,
		Message:   message,
		Hostname:  hostname,
		RequestID: requestID,
		RunID:     runID,
	}
	entry.Error = &struct {
		Msg   string `json:"msg"`
		Stack string `json:"stack"`
	}{Msg: errMsg}
	output(entry)
}

func output(entry LogEntry) {
	jsonData, _ := json.Marshal(entry)
	fmt.Println(string(jsonData))
}
