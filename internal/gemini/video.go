package gemini

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// VideoOperation is the opaque handle of an in-progress remote video
// render. The provider owns its lifecycle; callers only inspect Done, the
// error, and the download reference, and re-submit the handle for polling.
type VideoOperation struct {
	Name        string
	Done        bool
	Error       *OperationError
	DownloadURI string
}

// OperationError is a terminal failure reported by the remote job.
type OperationError struct {
	Code    int
	Message string
}

// Error formats the remote failure for user-facing messages.
func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("video job failed with code %d", e.Code)
}

type videoJobRequest struct {
	Instances  []videoInstance `json:"instances"`
	Parameters videoParameters `json:"parameters"`
}

type videoInstance struct {
	Prompt string `json:"prompt"`
}

type videoParameters struct {
	SampleCount int    `json:"sampleCount"`
	Resolution  string `json:"resolution"`
	AspectRatio string `json:"aspectRatio"`
}

type operationResponse struct {
	Name  string `json:"name"`
	Done  bool   `json:"done"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
	Response *struct {
		GeneratedVideos       []generatedVideo `json:"generatedVideos,omitempty"`
		GenerateVideoResponse *struct {
			GeneratedSamples []generatedVideo `json:"generatedSamples,omitempty"`
		} `json:"generateVideoResponse,omitempty"`
	} `json:"response,omitempty"`
}

type generatedVideo struct {
	Video struct {
		URI string `json:"uri"`
	} `json:"video"`
}

// toOperation flattens the wire operation into the caller-facing handle.
func (r *operationResponse) toOperation() VideoOperation {
	op := VideoOperation{
		Name: r.Name,
		Done: r.Done,
	}
	if r.Error != nil {
		op.Error = &OperationError{Code: r.Error.Code, Message: r.Error.Message}
	}
	if r.Response == nil {
		return op
	}

	videos := r.Response.GeneratedVideos
	if len(videos) == 0 && r.Response.GenerateVideoResponse != nil {
		videos = r.Response.GenerateVideoResponse.GeneratedSamples
	}
	if len(videos) > 0 {
		op.DownloadURI = videos[0].Video.URI
	}
	return op
}

// SubmitVideoJob starts a remote video render for the visual summary
// prompt and returns its operation handle.
func (c *Client) SubmitVideoJob(ctx context.Context, prompt string) (VideoOperation, error) {
	key, err := c.videoKey()
	if err != nil {
		return VideoOperation{}, err
	}

	reqBody := videoJobRequest{
		Instances: []videoInstance{{Prompt: prompt}},
		Parameters: videoParameters{
			SampleCount: 1,
			Resolution:  "720p",
			AspectRatio: "16:9",
		},
	}

	var resp operationResponse
	if err := c.postJSON(ctx, c.modelURL(videoModel, "predictLongRunning", key), reqBody, &resp); err != nil {
		return VideoOperation{}, fmt.Errorf("submit video job: %w", err)
	}
	if resp.Name == "" {
		return VideoOperation{}, fmt.Errorf("submit video job: response has no operation name")
	}

	return resp.toOperation(), nil
}

// PollVideoJob re-queries an operation handle and returns its new state.
func (c *Client) PollVideoJob(ctx context.Context, op VideoOperation) (VideoOperation, error) {
	key, err := c.videoKey()
	if err != nil {
		return VideoOperation{}, err
	}
	if op.Name == "" {
		return VideoOperation{}, fmt.Errorf("poll video job: operation name is empty")
	}

	url := fmt.Sprintf("%s/%s?key=%s", c.baseURL, strings.TrimPrefix(op.Name, "/"), key)

	var resp operationResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return VideoOperation{}, fmt.Errorf("poll video job: %w", err)
	}
	return resp.toOperation(), nil
}

// DownloadVideo fetches the finished video bytes from the operation's
// download reference. The fetch is authenticated with the video key.
func (c *Client) DownloadVideo(ctx context.Context, uri string) ([]byte, error) {
	key, err := c.videoKey()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(uri) == "" {
		return nil, fmt.Errorf("download video: uri is empty")
	}

	sep := "?"
	if strings.Contains(uri, "?") {
		sep = "&"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri+sep+"key="+key, nil)
	if err != nil {
		return nil, fmt.Errorf("download video: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("download video: fetch returned %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download video: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("download video: empty response body")
	}
	return data, nil
}
