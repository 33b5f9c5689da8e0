package communications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"luckyace.io/backend/games"
	"luckyace.io/backend/responses"
)

func TestSubscribeAndPropagateRound(t *testing.T) {
	manager := New()
	feed := make(chan Broadcast, 1)

	manager.ProcessEvent(ManagerEvent{
		Type: SubscribeFeed,
		Body: ManagerEventSubscribeFeed{Id: "feed-1", Feed: feed},
	})
	manager.ProcessEvent(ManagerEvent{
		Type: SubscribeRounds,
		Body: ManagerEventSubscribeRounds{Id: "feed-1", Game: games.GameBlackjack},
	})

	round := responses.Round{Game: games.GameBlackjack, Username: "alice"}
	manager.ProcessEvent(ManagerEvent{Type: PropagateRound, Body: round})

	broadcast := <-feed
	assert.Equal(t, NewRound, broadcast.Type)
	assert.Equal(t, round, broadcast.Body)
}

func TestPropagateRoundSkipsOtherGames(t *testing.T) {
	manager := New()
	feed := make(chan Broadcast, 1)

	manager.ProcessEvent(ManagerEvent{
		Type: SubscribeFeed,
		Body: ManagerEventSubscribeFeed{Id: "feed-1", Feed: feed},
	})
	manager.ProcessEvent(ManagerEvent{
		Type: SubscribeRounds,
		Body: ManagerEventSubscribeRounds{Id: "feed-1", Game: games.GameBlackjack},
	})

	manager.ProcessEvent(ManagerEvent{
		Type: PropagateRound,
		Body: responses.Round{Game: games.GameRoulette},
	})
	assert.Empty(t, feed)
}

func TestSubscribeAllRounds(t *testing.T) {
	manager := New()
	feed := make(chan Broadcast, len(games.Names()))

	manager.ProcessEvent(ManagerEvent{
		Type: SubscribeFeed,
		Body: ManagerEventSubscribeFeed{Id: "feed-1", Feed: feed},
	})
	manager.ProcessEvent(ManagerEvent{
		Type: SubscribeAllRounds,
		Body: ManagerEventSubscribeAllRounds{Id: "feed-1"},
	})

	for _, game := range games.Names() {
		manager.ProcessEvent(ManagerEvent{
			Type: PropagateRound,
			Body: responses.Round{Game: game},
		})
	}
	assert.Len(t, feed, len(games.Names()))

	manager.ProcessEvent(ManagerEvent{
		Type: UnsubscribeAllRounds,
		Body: ManagerEventUnsubscribeAllRounds{Id: "feed-1"},
	})
	for _, subs := range manager.SubscriptionsRounds {
		assert.NotContains(t, subs, "feed-1")
	}
}

func TestUnsubscribeFeedDropsRoundSubscriptions(t *testing.T) {
	manager := New()
	feed := make(chan Broadcast, 1)

	manager.ProcessEvent(ManagerEvent{
		Type: SubscribeFeed,
		Body: ManagerEventSubscribeFeed{Id: "feed-1", Feed: feed},
	})
	manager.ProcessEvent(ManagerEvent{
		Type: SubscribeRounds,
		Body: ManagerEventSubscribeRounds{Id: "feed-1", Game: games.GameCraps},
	})
	manager.ProcessEvent(ManagerEvent{
		Type: UnsubscribeFeed,
		Body: ManagerEventUnsubscribeFeed{Id: "feed-1"},
	})

	assert.NotContains(t, manager.Feeds, "feed-1")
	assert.NotContains(t, manager.SubscriptionsRounds[games.GameCraps], "feed-1")
}

func TestResubscribeFeedResetsRoundSubscriptions(t *testing.T) {
	manager := New()
	first := make(chan Broadcast, 1)
	second := make(chan Broadcast, 1)

	manager.ProcessEvent(ManagerEvent{
		Type: SubscribeFeed,
		Body: ManagerEventSubscribeFeed{Id: "feed-1", Feed: first},
	})
	manager.ProcessEvent(ManagerEvent{
		Type: SubscribeRounds,
		Body: ManagerEventSubscribeRounds{Id: "feed-1", Game: games.GameSlots},
	})
	manager.ProcessEvent(ManagerEvent{
		Type: SubscribeFeed,
		Body: ManagerEventSubscribeFeed{Id: "feed-1", Feed: second},
	})

	assert.NotContains(t, manager.SubscriptionsRounds[games.GameSlots], "feed-1")
}

func TestDirectMessage(t *testing.T) {
	manager := New()
	feed := make(chan Broadcast, 1)

	manager.ProcessEvent(ManagerEvent{
		Type: SubscribeFeed,
		Body: ManagerEventSubscribeFeed{Id: "feed-1", Feed: feed},
	})
	manager.ProcessEvent(ManagerEvent{
		Type: DirectMessage,
		Body: ManagerEventDirectMessage{
			Id:   "feed-1",
			Body: Broadcast{Type: TableUpdate, Body: "hello"},
		},
	})

	require.Len(t, feed, 1)
	broadcast := <-feed
	assert.Equal(t, TableUpdate, broadcast.Type)
	assert.Equal(t, "hello", broadcast.Body)
}
