package emotion

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client 调用外部表情识别服务，本仓库不做任何视觉计算
type Client struct {
	http *resty.Client
}

type AnalyzeRequest struct {
	Image string `json:"image"`
}

type FaceResult struct {
	Box             []int              `json:"box"`
	Emotions        map[string]float64 `json:"emotions"`
	DominantEmotion string             `json:"dominant_emotion"`
	Confidence      float64            `json:"confidence"`
}

type AnalyzeResponse struct {
	Success  bool         `json:"success"`
	Message  string       `json:"message"`
	Emotions []FaceResult `json:"emotions"`
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{http: http}
}

// Analyze 发送base64图像帧，返回识别结果
func (c *Client) Analyze(ctx context.Context, image string) (*AnalyzeResponse, error) {
	var result AnalyzeResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(AnalyzeRequest{Image: image}).
		SetResult(&result).
		Post("/analyze")
	if err != nil {
		return nil, fmt.Errorf("failed to call emotion service: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("emotion service returned status %d: %s", resp.StatusCode(), resp.String())
	}

	return &result, nil
}
