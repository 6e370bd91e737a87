package openai

import (
	"sync"

	"github.com/teamscope-ai/teamscope/backend/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// TeamOpenAIClient implements ai.TeamAIClient against any
// OpenAI-compatible chat completion API.
//
// A TeamOpenAIClient should be created using NewTeamOpenAIClient.
type TeamOpenAIClient struct {
	profileModel  string
	analysisModel string

	chatURL string
	chatKey string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewTeamOpenAIClientParams defines the configuration parameters for
// creating a new TeamOpenAIClient.
//
// ProfileModel is used for behavioral profile generation, AnalysisModel
// for team relationship analysis. ChatURL and ChatKey configure the
// chat/completion API endpoint; an empty ChatURL means the OpenAI
// default.
type NewTeamOpenAIClientParams struct {
	ProfileModel  string
	AnalysisModel string

	ChatURL string
	ChatKey string
}

// NewTeamOpenAIClient creates and returns a new TeamOpenAIClient
// configured with the provided parameters.
//
// Example:
//
//	client := openai.NewTeamOpenAIClient(openai.NewTeamOpenAIClientParams{
//		ProfileModel:  "gpt-4o-mini",
//		AnalysisModel: "gpt-4o",
//		ChatKey:       os.Getenv("OPENAI_API_KEY"),
//	})
func NewTeamOpenAIClient(
	params NewTeamOpenAIClientParams,
) *TeamOpenAIClient {
	return &TeamOpenAIClient{
		profileModel:  params.ProfileModel,
		analysisModel: params.AnalysisModel,

		chatURL: params.ChatURL,
		chatKey: params.ChatKey,

		metricsLock: sync.Mutex{},
		metrics:     ai.ModelMetrics{},

		ChatClient: newOpenaiClient(params.ChatURL, params.ChatKey),
	}
}

func newOpenaiClient(
	baseURL string,
	apiKey string,
) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}
