package communications

import (
	"fmt"
	"log/slog"

	"luckyace.io/backend/games"
	"luckyace.io/backend/responses"
)

type BroadcastType int

const (
	NewRound BroadcastType = iota
	TableUpdate
)

type Broadcast struct {
	Type BroadcastType
	Body interface{}
}

type ManagerEventType int

const (
	SubscribeFeed ManagerEventType = iota
	UnsubscribeFeed
	SubscribeRounds
	UnsubscribeRounds
	SubscribeAllRounds
	UnsubscribeAllRounds
	PropagateRound
	DirectMessage
)

type ManagerEvent struct {
	Type ManagerEventType
	Body interface{}
}

type ManagerEventSubscribeFeed struct {
	Id   string
	Feed chan Broadcast
}
type ManagerEventUnsubscribeFeed struct {
	Id string
}

type ManagerEventSubscribeRounds struct {
	Id   string
	Game string
}
type ManagerEventUnsubscribeRounds struct {
	Id   string
	Game string
}
type ManagerEventSubscribeAllRounds struct {
	Id string
}
type ManagerEventUnsubscribeAllRounds struct {
	Id string
}

// ManagerEventDirectMessage goes to a single feed only, bypassing the round
// subscriptions.
type ManagerEventDirectMessage struct {
	Id   string
	Body Broadcast
}

var ManagerPub *Manager

// Manager fans finished rounds out to subscribed websocket feeds and routes
// per-player table updates. All subscription state is owned by Run's
// goroutine.
type Manager struct {
	Feeds               map[string]chan Broadcast
	SubscriptionsRounds map[string]map[string]bool
	ManagerReceiver     chan ManagerEvent
	Stop                chan bool
}

func New() *Manager {
	subscriptions := make(map[string]map[string]bool)
	for _, game := range games.Names() {
		subscriptions[game] = make(map[string]bool)
	}

	ManagerPub = &Manager{
		Feeds:               make(map[string]chan Broadcast),
		SubscriptionsRounds: subscriptions,
		ManagerReceiver:     make(chan ManagerEvent),
		Stop:                make(chan bool),
	}
	return ManagerPub
}

func (m *Manager) Run() {
	slog.Info("Starting manager")
	for {
		select {
		case event := <-m.ManagerReceiver:
			m.ProcessEvent(event)
		case <-m.Stop:
			slog.Info("Manager exiting")
			return
		}
	}
}

func (m *Manager) PropagateRound(round responses.Round) {
	subs, ok := m.SubscriptionsRounds[round.Game]
	if !ok {
		slog.Error("Game not found", "game", round.Game)
		return
	}
	for sub := range subs {
		feed, ok := m.Feeds[sub]
		if !ok {
			slog.Error("Feed not found", "sub", sub)
			continue
		}
		feed <- Broadcast{Type: NewRound, Body: round}
	}
}

func (m *Manager) DirectMessage(id string, broadcast Broadcast) {
	feed, ok := m.Feeds[id]
	if !ok {
		slog.Error("Feed not found", "sub", id)
		return
	}
	feed <- broadcast
}

func (m *Manager) ProcessEvent(event ManagerEvent) {
	switch event.Type {
	case PropagateRound:
		round, ok := event.Body.(responses.Round)
		if !ok {
			panic(fmt.Sprintf("Cannot convert Round %#v", event))
		}
		m.PropagateRound(round)
	case DirectMessage:
		message, ok := event.Body.(ManagerEventDirectMessage)
		if !ok {
			panic(fmt.Sprintf("Cannot convert DirectMessage %#v", event))
		}
		m.DirectMessage(message.Id, message.Body)
	case SubscribeFeed:
		sub, ok := event.Body.(ManagerEventSubscribeFeed)
		if !ok {
			panic(fmt.Sprintf("Cannot convert SubscribeFeed %#v", event))
		}
		_, ok = m.Feeds[sub.Id]
		if ok {
			for _, subs := range m.SubscriptionsRounds {
				delete(subs, sub.Id)
			}
		}
		m.Feeds[sub.Id] = sub.Feed
	case UnsubscribeFeed:
		sub, ok := event.Body.(ManagerEventUnsubscribeFeed)
		if !ok {
			panic(fmt.Sprintf("Cannot convert UnsubscribeFeed %#v", event))
		}
		for _, subs := range m.SubscriptionsRounds {
			delete(subs, sub.Id)
		}
		delete(m.Feeds, sub.Id)
	case SubscribeRounds:
		sub, ok := event.Body.(ManagerEventSubscribeRounds)
		if !ok {
			panic(fmt.Sprintf("Cannot convert SubscribeRounds %#v", event))
		}
		subs, ok := m.SubscriptionsRounds[sub.Game]
		if !ok {
			slog.Error("Game not found", "game", sub.Game)
			return
		}
		subs[sub.Id] = true
	case UnsubscribeRounds:
		sub, ok := event.Body.(ManagerEventUnsubscribeRounds)
		if !ok {
			panic(fmt.Sprintf("Cannot convert UnsubscribeRounds %#v", event))
		}
		subs, ok := m.SubscriptionsRounds[sub.Game]
		if !ok {
			slog.Error("Game not found", "game", sub.Game)
			return
		}
		delete(subs, sub.Id)
	case SubscribeAllRounds:
		sub, ok := event.Body.(ManagerEventSubscribeAllRounds)
		if !ok {
			panic(fmt.Sprintf("Cannot convert SubscribeAllRounds %#v", event))
		}
		for _, subs := range m.SubscriptionsRounds {
			subs[sub.Id] = true
		}
	case UnsubscribeAllRounds:
		sub, ok := event.Body.(ManagerEventUnsubscribeAllRounds)
		if !ok {
			panic(fmt.Sprintf("Cannot convert UnsubscribeAllRounds %#v", event))
		}
		for _, subs := range m.SubscriptionsRounds {
			delete(subs, sub.Id)
		}
	default:
		panic(fmt.Sprintf("unexpected communications.ManagerEventType: %#v", event.Type))
	}
}
