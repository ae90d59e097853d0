package config

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
)

// RPCManager 管理多个 RPC 节点，按健康状况自动切换
type RPCManager struct {
	chainName         string
	urls              []string
	clients           []*ethclient.Client
	current           int
	mutex             sync.RWMutex
	timeout           time.Duration
	healthCacheWindow time.Duration
	lastHealthyAt     []time.Time
}

func NewRPCManager(chainName string, urls []string, timeout time.Duration) (*RPCManager, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("at least one RPC URL is required")
	}

	manager := &RPCManager{
		chainName:         chainName,
		urls:              urls,
		timeout:           timeout,
		clients:           make([]*ethclient.Client, len(urls)),
		healthCacheWindow: 5 * time.Second,
		lastHealthyAt:     make([]time.Time, len(urls)),
	}

	connected := 0
	for i, url := range urls {
		client, err := ethclient.Dial(url)
		if err != nil {
			// 连接失败记录后继续尝试其他节点
			fmt.Printf("⚠️  Failed to connect to RPC [%s]: %v\n", url, err)
			continue
		}
		manager.clients[i] = client
		connected++
	}
	if connected == 0 {
		return nil, fmt.Errorf("no RPC node reachable for chain %s", chainName)
	}

	manager.current = rand.Intn(len(manager.clients))

	return manager, nil
}

func (r *RPCManager) GetClient() (*ethclient.Client, error) {
	r.mutex.RLock()
	current := r.current
	timeout := r.timeout
	cacheWindow := r.healthCacheWindow
	var client *ethclient.Client
	var lastHealthy time.Time
	if current >= 0 && current < len(r.clients) {
		client = r.clients[current]
		lastHealthy = r.lastHealthyAt[current]
	}
	r.mutex.RUnlock()

	if client != nil {
		if !lastHealthy.IsZero() && time.Since(lastHealthy) < cacheWindow {
			return client, nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		_, err := client.BlockNumber(ctx)
		if err == nil {
			r.mutex.Lock()
			if current >= 0 && current < len(r.lastHealthyAt) {
				r.lastHealthyAt[current] = time.Now()
			}
			r.mutex.Unlock()
			return client, nil
		}
	}

	return r.switchToNextClient()
}

func (r *RPCManager) switchToNextClient() (*ethclient.Client, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	// 轮询所有客户端
	for i := 0; i < len(r.clients); i++ {
		nextIndex := (r.current + 1 + i) % len(r.clients)

		if r.clients[nextIndex] != nil {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
			_, err := r.clients[nextIndex].BlockNumber(ctx)
			cancel()

			if err == nil {
				r.current = nextIndex
				if nextIndex >= 0 && nextIndex < len(r.lastHealthyAt) {
					r.lastHealthyAt[nextIndex] = time.Now()
				}
				fmt.Printf("🔄 Switched to RPC: %s\n", r.urls[nextIndex])
				return r.clients[nextIndex], nil
			}
		}
	}

	return nil, fmt.Errorf("all RPC nodes are unavailable")
}

func (r *RPCManager) GetCurrentURL() string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if r.current < len(r.urls) {
		return r.urls[r.current]
	}
	return ""
}

func (r *RPCManager) GetChainName() string {
	return r.chainName
}

func (r *RPCManager) Timeout() time.Duration {
	return r.timeout
}

func (r *RPCManager) Close() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, client := range r.clients {
		if client != nil {
			client.Close()
		}
	}
}
