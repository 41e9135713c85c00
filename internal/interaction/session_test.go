package interaction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Helioguilhermediassilva/NarrativeVerse/internal/services"
	"github.com/Helioguilhermediassilva/NarrativeVerse/pkg/dialogue"
)

// testSession builds a standalone session with mock collaborators.
func testSession(t *testing.T) (*Session, *services.MockNarrativeProvider, *MockRenderer, *MockEffectSink) {
	t.Helper()
	provider := services.NewMockNarrativeProvider()
	renderer := NewMockRenderer()
	effects := NewMockEffectSink()
	session := newSession("npc_x", provider, renderer, effects, nil, nil, testLogger())
	return session, provider, renderer, effects
}

func TestSession_StartRendersTurnAndOptions(t *testing.T) {
	session, _, renderer, _ := testSession(t)

	session.Start(context.Background(), "greeting")

	assert.True(t, session.Open())
	require.NotNil(t, session.Turn())
	assert.NotEmpty(t, session.Options())

	assert.True(t, renderer.PanelVisible)
	assert.Equal(t, 1, renderer.RenderTurnCalls)
	assert.Equal(t, 1, renderer.RenderOptionsCalls)
	assert.Equal(t, session.Generation(), renderer.LastGeneration)
	assert.Equal(t, []string{"Goodbye."}, renderer.LastLabels)
}

func TestSession_StartTwiceIsNoOp(t *testing.T) {
	session, provider, _, _ := testSession(t)

	session.Start(context.Background(), "greeting")
	session.Start(context.Background(), "greeting")
	assert.Equal(t, 1, provider.TurnRequestCount())
}

func TestSession_ProviderFailureOpensStuckSession(t *testing.T) {
	session, provider, renderer, _ := testSession(t)
	provider.SetUnavailable()

	session.Start(context.Background(), "greeting")

	// The session opens, but visibly stuck: fallback turn, no options.
	assert.True(t, session.Open())
	require.NotNil(t, session.Turn())
	assert.Equal(t, fallbackSpeaker, session.Turn().Speaker)
	assert.Equal(t, fallbackBody, session.Turn().Body)
	assert.Empty(t, session.Options())
	assert.True(t, renderer.PanelVisible)
	assert.Empty(t, renderer.LastLabels)

	// No automatic retry; the only way out is closing.
	session.Close()
	assert.False(t, session.Open())
	assert.False(t, renderer.PanelVisible)
	assert.Equal(t, 1, provider.TurnRequestCount())
}

func TestSession_ApplyResponse_OutOfRangeIsRejected(t *testing.T) {
	session, provider, _, _ := testSession(t)
	ctx := context.Background()
	session.Start(ctx, "greeting")

	turn := session.Turn()
	options := session.Options()
	generation := session.Generation()

	for _, index := range []int{-1, len(options), len(options) + 7} {
		session.ApplyResponse(ctx, generation, index)
		assert.True(t, session.Open())
		assert.Same(t, turn, session.Turn(), "turn must not change")
		assert.Equal(t, options, session.Options(), "options must not change")
		assert.Equal(t, generation, session.Generation())
	}
	assert.Equal(t, 1, provider.TurnRequestCount())
	assert.Empty(t, provider.ReportChoiceCalls)
}

func TestSession_ApplyResponse_StaleGenerationIsRejected(t *testing.T) {
	session, provider, _, effects := testSession(t)
	provider.RequestTurnFunc = func(ctx context.Context, entityID, convContext string) (*dialogue.Turn, []dialogue.ResponseOption, error) {
		return &dialogue.Turn{Speaker: "npc_x", Body: convContext},
			[]dialogue.ResponseOption{
				{Label: "Onward.", NextContext: "deeper"},
				{Label: "Enough.", EndsConversation: true, SideEffects: dialogue.SideEffects{TriggerEvent: "door_slam"}},
			}, nil
	}
	ctx := context.Background()
	session.Start(ctx, "greeting")

	staleGeneration := session.Generation()
	session.ApplyResponse(ctx, staleGeneration, 0) // advances to a new turn

	require.True(t, session.Open())
	require.NotEqual(t, staleGeneration, session.Generation())

	// A UI callback from the superseded option set must be discarded.
	session.ApplyResponse(ctx, staleGeneration, 1)
	assert.True(t, session.Open(), "stale ending option must not close the session")
	assert.Empty(t, effects.TriggeredEvents, "stale side effects must not fire")
	assert.Equal(t, 2, provider.TurnRequestCount())
}

func TestSession_ApplyResponse_EndsConversation(t *testing.T) {
	session, provider, renderer, effects := testSession(t)
	provider.RequestTurnFunc = func(ctx context.Context, entityID, convContext string) (*dialogue.Turn, []dialogue.ResponseOption, error) {
		return &dialogue.Turn{Speaker: "npc_x", Body: "farewell turn"},
			[]dialogue.ResponseOption{{
				Label:            "I accept. Goodbye.",
				EndsConversation: true,
				SideEffects: dialogue.SideEffects{
					GrantedItems: []string{"star_map", "ration_pack"},
					QuestUpdate:  "chart_the_nebula",
					TriggerEvent: "fanfare",
				},
			}}, nil
	}

	var chosenSeen *dialogue.ResponseOption
	endedCalls := 0
	session.onChosen = func(o dialogue.ResponseOption) { chosenSeen = &o }
	session.onEnded = func() { endedCalls++ }

	ctx := context.Background()
	session.Start(ctx, "greeting")
	session.ApplyResponse(ctx, session.Generation(), 0)

	assert.False(t, session.Open())
	assert.Nil(t, session.Turn())
	assert.Empty(t, session.Options())
	assert.False(t, renderer.PanelVisible)
	assert.Equal(t, 1, endedCalls)

	require.NotNil(t, chosenSeen)
	assert.True(t, chosenSeen.EndsConversation)

	// Side effects forwarded in declaration order.
	assert.Equal(t, []string{"star_map", "ration_pack"}, effects.GrantedItems)
	assert.Equal(t, []string{"chart_the_nebula"}, effects.QuestUpdates)
	assert.Equal(t, []string{"fanfare"}, effects.TriggeredEvents)

	// The choice was reported with the context it was made in.
	require.Len(t, provider.ReportChoiceCalls, 1)
	assert.Equal(t, "greeting", provider.ReportChoiceCalls[0].Context)
}

func TestSession_ApplyResponse_ContinuationKeepsPanelOpen(t *testing.T) {
	session, provider, renderer, _ := testSession(t)
	twoOptionProvider(provider, "quest_offer")

	ctx := context.Background()
	session.Start(ctx, "greeting")
	session.ApplyResponse(ctx, session.Generation(), 0)

	assert.True(t, session.Open())
	require.NotNil(t, session.Turn())
	assert.Equal(t, "Turn for quest_offer", session.Turn().Body)
	assert.Equal(t, 2, renderer.RenderTurnCalls)
	assert.Equal(t, 1, renderer.ShowPanelCalls)
	assert.Zero(t, renderer.HidePanelCalls)

	require.Equal(t, 2, provider.TurnRequestCount())
	assert.Equal(t, "quest_offer", provider.RequestTurnCalls[1].Context)
}

func TestSession_CloseIsIdempotent(t *testing.T) {
	session, _, renderer, _ := testSession(t)
	session.Start(context.Background(), "greeting")

	session.Close()
	generation := session.Generation()
	hideCalls := renderer.HidePanelCalls

	session.Close()
	assert.Equal(t, generation, session.Generation(), "repeat close must not advance generation")
	assert.Equal(t, hideCalls, renderer.HidePanelCalls)
}

func TestSession_ApplyOnClosedSessionIsNoOp(t *testing.T) {
	session, provider, _, effects := testSession(t)
	ctx := context.Background()
	session.Start(ctx, "greeting")
	generation := session.Generation()
	session.Close()

	session.ApplyResponse(ctx, generation, 0)
	assert.False(t, session.Open())
	assert.Empty(t, provider.ReportChoiceCalls)
	assert.Empty(t, effects.TriggeredEvents)
}

func TestSession_ProviderFailureMidConversation(t *testing.T) {
	session, provider, renderer, _ := testSession(t)
	calls := 0
	provider.RequestTurnFunc = func(ctx context.Context, entityID, convContext string) (*dialogue.Turn, []dialogue.ResponseOption, error) {
		calls++
		if calls > 1 {
			return nil, nil, services.ErrUnavailable
		}
		return &dialogue.Turn{Speaker: "npc_x", Body: "first"},
			[]dialogue.ResponseOption{{Label: "More.", NextContext: "second"}}, nil
	}

	ctx := context.Background()
	session.Start(ctx, "greeting")
	session.ApplyResponse(ctx, session.Generation(), 0)

	// The continuation failed: session stays open on the fallback turn.
	assert.True(t, session.Open())
	assert.Equal(t, fallbackSpeaker, session.Turn().Speaker)
	assert.Empty(t, session.Options())
	assert.True(t, renderer.PanelVisible)
}

func TestSession_InvalidProviderOptionsDegradeToFallback(t *testing.T) {
	session, provider, _, _ := testSession(t)
	provider.RequestTurnFunc = func(ctx context.Context, entityID, convContext string) (*dialogue.Turn, []dialogue.ResponseOption, error) {
		// A continuing option without a destination violates the contract.
		return &dialogue.Turn{Speaker: "npc_x", Body: "bad"},
			[]dialogue.ResponseOption{{Label: "Continue nowhere."}}, nil
	}

	session.Start(context.Background(), "greeting")
	assert.True(t, session.Open())
	assert.Equal(t, fallbackSpeaker, session.Turn().Speaker)
	assert.Empty(t, session.Options())
}
