package ollama

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/teamscope-ai/teamscope/backend/pkg/ai"

	"github.com/ollama/ollama/api"
	"golang.org/x/sync/semaphore"
)

// TeamOllamaClient implements the ai.TeamAIClient interface using
// Ollama as the backend, for locally-hosted models.
type TeamOllamaClient struct {
	profileModel  string
	analysisModel string

	reqLock *semaphore.Weighted

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client

	Client *api.Client
}

// NewTeamOllamaClientParams contains configuration options for creating a new TeamOllamaClient.
type NewTeamOllamaClientParams struct {
	ProfileModel  string
	AnalysisModel string

	BaseURL string
	ApiKey  string

	MaxConcurrentRequests int64
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so original request isn't modified
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		// don't overwrite if already set
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.rt.RoundTrip(r)
}

// NewTeamOllamaClient creates a new Ollama-based AI client with the
// specified configuration. It connects to the Ollama server at the
// given BaseURL (or the default if empty).
func NewTeamOllamaClient(
	params NewTeamOllamaClientParams,
) (*TeamOllamaClient, error) {
	var (
		u   *url.URL
		err error
	)

	if params.BaseURL != "" {
		u, err = url.Parse(params.BaseURL)
		if err != nil {
			return nil, err
		}
	}

	httpClient := &http.Client{
		Transport: &headerTransport{
			headers: map[string]string{
				"Authorization": "Bearer " + params.ApiKey,
			},
			rt: http.DefaultTransport,
		},
	}

	cli := api.NewClient(u, httpClient)

	maxConcurrent := params.MaxConcurrentRequests
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &TeamOllamaClient{
		profileModel:  params.ProfileModel,
		analysisModel: params.AnalysisModel,

		reqLock: semaphore.NewWeighted(maxConcurrent),

		metricsLock: sync.Mutex{},
		metrics:     ai.ModelMetrics{},

		baseURL:    u,
		apiKey:     params.ApiKey,
		httpClient: httpClient,

		Client: cli,
	}, nil
}
