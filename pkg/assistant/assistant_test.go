package assistant

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
)

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		t.Fatalf("reading request body: %v", err)
	}
	var payload map[string]any
	if err := sonic.Unmarshal(body, &payload); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	return payload
}

func TestCreate(t *testing.T) {
	var assistantPayload, storePayload, attachPayload, updatePayload map[string]any
	var uploadPurpose, uploadFilename, uploadContent, betaHeader string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /assistants", func(w http.ResponseWriter, r *http.Request) {
		betaHeader = r.Header.Get("OpenAI-Beta")
		assistantPayload = decodeBody(t, r)
		w.Write([]byte(`{"id":"asst_1"}`))
	})
	mux.HandleFunc("POST /files", func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file part: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		content, _ := io.ReadAll(file)
		uploadContent = string(content)
		uploadFilename = header.Filename
		uploadPurpose = r.FormValue("purpose")
		w.Write([]byte(`{"id":"file_1"}`))
	})
	mux.HandleFunc("POST /vector_stores", func(w http.ResponseWriter, r *http.Request) {
		storePayload = decodeBody(t, r)
		w.Write([]byte(`{"id":"vs_1"}`))
	})
	mux.HandleFunc("POST /vector_stores/{id}/files", func(w http.ResponseWriter, r *http.Request) {
		attachPayload = decodeBody(t, r)
		w.Write([]byte(`{"id":"vsf_1"}`))
	})
	mux.HandleFunc("POST /assistants/{id}", func(w http.ResponseWriter, r *http.Request) {
		updatePayload = decodeBody(t, r)
		w.Write([]byte(`{"id":"asst_1"}`))
	})
	mux.HandleFunc("POST /threads", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"thread_1"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.URL, "test-key", nil)
	session, err := client.Create(context.Background(), Document{
		Name: "report.pdf",
		Data: []byte("%PDF-fake"),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	want := Session{
		AssistantID:   "asst_1",
		ThreadID:      "thread_1",
		VectorStoreID: "vs_1",
		FileID:        "file_1",
	}
	if *session != want {
		t.Errorf("session = %+v, want %+v", *session, want)
	}

	if got, want := betaHeader, "assistants=v2"; got != want {
		t.Errorf("OpenAI-Beta = %q, want %q", got, want)
	}
	if got, want := assistantPayload["name"], "Yusr Document Assistant"; got != want {
		t.Errorf("assistant name = %q, want %q", got, want)
	}
	if got, want := assistantPayload["model"], "gpt-4o-mini"; got != want {
		t.Errorf("assistant model = %q, want %q", got, want)
	}
	if instructions, _ := assistantPayload["instructions"].(string); !strings.Contains(instructions, "reading assistant") {
		t.Errorf("instructions = %q, want reading assistant role", instructions)
	}
	tools, _ := assistantPayload["tools"].([]any)
	if len(tools) != 1 {
		t.Fatalf("tools = %v, want one entry", tools)
	}
	if tool, _ := tools[0].(map[string]any); tool["type"] != "file_search" {
		t.Errorf("tool = %v, want file_search", tools[0])
	}

	if got, want := uploadPurpose, "assistants"; got != want {
		t.Errorf("upload purpose = %q, want %q", got, want)
	}
	if got, want := uploadFilename, "report.pdf"; got != want {
		t.Errorf("upload filename = %q, want %q", got, want)
	}
	if got, want := uploadContent, "%PDF-fake"; got != want {
		t.Errorf("upload content = %q, want %q", got, want)
	}

	if got, want := storePayload["name"], "Yusr Document - report"; got != want {
		t.Errorf("vector store name = %q, want %q", got, want)
	}
	if got, want := attachPayload["file_id"], "file_1"; got != want {
		t.Errorf("attached file id = %q, want %q", got, want)
	}

	resources, _ := updatePayload["tool_resources"].(map[string]any)
	fileSearch, _ := resources["file_search"].(map[string]any)
	ids, _ := fileSearch["vector_store_ids"].([]any)
	if len(ids) != 1 || ids[0] != "vs_1" {
		t.Errorf("vector_store_ids = %v, want [vs_1]", ids)
	}
}

func TestCreateTextDocument(t *testing.T) {
	var uploadFilename, uploadContent string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /files", func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file part: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		content, _ := io.ReadAll(file)
		uploadFilename = header.Filename
		uploadContent = string(content)
		w.Write([]byte(`{"id":"file_1"}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"x_1"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.URL, "test-key", nil)
	if _, err := client.Create(context.Background(), Document{
		Name: "مقال القراءة",
		Text: "النص الكامل للمقال",
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if got, want := uploadFilename, "مقال القراءة.txt"; got != want {
		t.Errorf("upload filename = %q, want %q", got, want)
	}
	if got, want := uploadContent, "النص الكامل للمقال"; got != want {
		t.Errorf("upload content = %q, want %q", got, want)
	}
}

func TestCreateKeepsTxtExtension(t *testing.T) {
	var uploadFilename string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /files", func(w http.ResponseWriter, r *http.Request) {
		_, header, err := r.FormFile("file")
		if err == nil {
			uploadFilename = header.Filename
		}
		w.Write([]byte(`{"id":"file_1"}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"x_1"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.URL, "test-key", nil)
	if _, err := client.Create(context.Background(), Document{Name: "notes.txt", Text: "hello"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got, want := uploadFilename, "notes.txt"; got != want {
		t.Errorf("upload filename = %q, want %q", got, want)
	}
}

func TestCreateValidation(t *testing.T) {
	client := NewClient("http://unused.invalid", "test-key", nil)
	tests := []struct {
		name string
		doc  Document
	}{
		{"no name", Document{Text: "content"}},
		{"no content", Document{Name: "doc.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := client.Create(context.Background(), tt.doc); err == nil {
				t.Error("Create() error = nil, want error")
			}
		})
	}
}

func TestCreateStopsOnFirstFailure(t *testing.T) {
	uploads := 0
	mux := http.NewServeMux()
	mux.HandleFunc("POST /assistants", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom"}}`))
	})
	mux.HandleFunc("POST /files", func(w http.ResponseWriter, r *http.Request) {
		uploads++
		w.Write([]byte(`{"id":"file_1"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.URL, "test-key", nil)
	_, err := client.Create(context.Background(), Document{Name: "doc.txt", Text: "content"})
	if err == nil {
		t.Fatal("Create() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "creating assistant") {
		t.Errorf("error %q does not name the failing step", err)
	}
	if uploads != 0 {
		t.Errorf("upload endpoint hit %d times after assistant failure, want 0", uploads)
	}
}

func chatServer(t *testing.T, statuses []string, reply string) (*httptest.Server, *map[string]any) {
	t.Helper()
	polls := 0
	var messagePayload map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("POST /threads/{tid}/messages", func(w http.ResponseWriter, r *http.Request) {
		messagePayload = decodeBody(t, r)
		w.Write([]byte(`{"id":"msg_1"}`))
	})
	mux.HandleFunc("POST /threads/{tid}/runs", func(w http.ResponseWriter, r *http.Request) {
		payload := decodeBody(t, r)
		if payload["assistant_id"] != "asst_1" {
			t.Errorf("run assistant_id = %v, want asst_1", payload["assistant_id"])
		}
		w.Write([]byte(`{"id":"run_1"}`))
	})
	mux.HandleFunc("GET /threads/{tid}/runs/{rid}", func(w http.ResponseWriter, r *http.Request) {
		status := statuses[len(statuses)-1]
		if polls < len(statuses) {
			status = statuses[polls]
		}
		polls++
		if status == "failed" {
			w.Write([]byte(`{"id":"run_1","status":"failed","last_error":{"code":"server_error","message":"model overloaded"}}`))
			return
		}
		w.Write([]byte(`{"id":"run_1","status":"` + status + `"}`))
	})
	mux.HandleFunc("GET /threads/{tid}/messages", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("order"); got != "desc" {
			t.Errorf("order = %q, want desc", got)
		}
		if got := r.URL.Query().Get("limit"); got != "1" {
			t.Errorf("limit = %q, want 1", got)
		}
		w.Write([]byte(reply))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &messagePayload
}

func TestSendMessage(t *testing.T) {
	reply := `{"data":[{"content":[{"type":"text","text":{"value":"الفكرة الرئيسية هي القراءة الميسرة."}}]}]}`
	server, messagePayload := chatServer(t, []string{"queued", "in_progress", "completed"}, reply)

	client := NewClient(server.URL, "test-key", nil)
	client.pollInterval = time.Millisecond

	got, err := client.SendMessage(context.Background(), "thread_1", "asst_1", "ما الفكرة الرئيسية؟")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if want := "الفكرة الرئيسية هي القراءة الميسرة."; got != want {
		t.Errorf("reply = %q, want %q", got, want)
	}
	if got, want := (*messagePayload)["role"], "user"; got != want {
		t.Errorf("message role = %q, want %q", got, want)
	}
	if got, want := (*messagePayload)["content"], "ما الفكرة الرئيسية؟"; got != want {
		t.Errorf("message content = %q, want %q", got, want)
	}
}

func TestSendMessageRunFailure(t *testing.T) {
	server, _ := chatServer(t, []string{"queued", "failed"}, `{"data":[]}`)

	client := NewClient(server.URL, "test-key", nil)
	client.pollInterval = time.Millisecond

	_, err := client.SendMessage(context.Background(), "thread_1", "asst_1", "hello")
	if err == nil {
		t.Fatal("SendMessage() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "failed") {
		t.Errorf("error %q does not carry the run status", err)
	}
	if !strings.Contains(err.Error(), "model overloaded") {
		t.Errorf("error %q does not carry last_error", err)
	}
}

func TestSendMessageSkipsNonTextBlocks(t *testing.T) {
	reply := `{"data":[{"content":[{"type":"image_file"},{"type":"text","text":{"value":"here"}}]}]}`
	server, _ := chatServer(t, []string{"completed"}, reply)

	client := NewClient(server.URL, "test-key", nil)
	client.pollInterval = time.Millisecond

	got, err := client.SendMessage(context.Background(), "thread_1", "asst_1", "hello")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if want := "here"; got != want {
		t.Errorf("reply = %q, want %q", got, want)
	}
}

func TestSendMessageNoTextContent(t *testing.T) {
	server, _ := chatServer(t, []string{"completed"}, `{"data":[]}`)

	client := NewClient(server.URL, "test-key", nil)
	client.pollInterval = time.Millisecond

	got, err := client.SendMessage(context.Background(), "thread_1", "asst_1", "hello")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if got != noReply {
		t.Errorf("reply = %q, want fallback %q", got, noReply)
	}
}

func TestSendMessageCancelledWhileWaiting(t *testing.T) {
	server, _ := chatServer(t, []string{"queued"}, `{"data":[]}`)

	client := NewClient(server.URL, "test-key", nil)
	client.pollInterval = 5 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()

	_, err := client.SendMessage(ctx, "thread_1", "asst_1", "hello")
	if err == nil {
		t.Fatal("SendMessage() error = nil, want context error")
	}
}

func TestSendMessageValidation(t *testing.T) {
	client := NewClient("http://unused.invalid", "test-key", nil)
	tests := []struct {
		name                           string
		threadID, assistantID, message string
	}{
		{"missing thread", "", "asst_1", "hello"},
		{"missing assistant", "thread_1", "", "hello"},
		{"blank message", "thread_1", "asst_1", "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := client.SendMessage(context.Background(), tt.threadID, tt.assistantID, tt.message); err == nil {
				t.Error("SendMessage() error = nil, want error")
			}
		})
	}
}

func TestDelete(t *testing.T) {
	var deleted []string
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /assistants/{id}", func(w http.ResponseWriter, r *http.Request) {
		deleted = append(deleted, "assistant:"+r.PathValue("id"))
		w.Write([]byte(`{"deleted":true}`))
	})
	mux.HandleFunc("DELETE /vector_stores/{id}", func(w http.ResponseWriter, r *http.Request) {
		deleted = append(deleted, "store:"+r.PathValue("id"))
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("DELETE /files/{id}", func(w http.ResponseWriter, r *http.Request) {
		deleted = append(deleted, "file:"+r.PathValue("id"))
		w.Write([]byte(`{"deleted":true}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.URL, "test-key", nil)
	err := client.Delete(context.Background(), Session{
		AssistantID:   "asst_1",
		VectorStoreID: "vs_1",
		FileID:        "file_1",
	})
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	want := []string{"assistant:asst_1", "store:vs_1", "file:file_1"}
	if len(deleted) != len(want) {
		t.Fatalf("deleted = %v, want %v", deleted, want)
	}
	for i := range want {
		if deleted[i] != want[i] {
			t.Errorf("deleted[%d] = %q, want %q", i, deleted[i], want[i])
		}
	}
}

func TestDeleteAssistantFailureSurfaces(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /assistants/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"message":"no such assistant"}}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.URL, "test-key", nil)
	if err := client.Delete(context.Background(), Session{AssistantID: "asst_gone"}); err == nil {
		t.Error("Delete() error = nil, want error")
	}
}

func TestDeleteRequiresAssistantID(t *testing.T) {
	client := NewClient("http://unused.invalid", "test-key", nil)
	if err := client.Delete(context.Background(), Session{}); err == nil {
		t.Error("Delete() error = nil, want error")
	}
}
