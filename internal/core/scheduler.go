package core

import (
	"sync"

	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"github.com/djskncxm/DuckRequest/pkg/blueprint"
	"github.com/djskncxm/DuckRequest/pkg/httpc"
)

// Built 一条已经构造完成的请求
type Built struct {
	Name    string
	Style   blueprint.Style
	Request *httpc.Request
}

// Scheduler 按构造顺序保存请求
type Scheduler struct {
	RequestQueue *linkedlistqueue.Queue
	mu           sync.Mutex
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		RequestQueue: linkedlistqueue.New(),
	}
}

func (scheduler *Scheduler) NextRequest() *Built {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	value, ok := scheduler.RequestQueue.Dequeue()
	if !ok {
		return nil
	}

	built, ok := value.(*Built)
	if !ok {
		return nil
	}
	return built
}

func (scheduler *Scheduler) EnqueueRequest(built *Built) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.RequestQueue.Enqueue(built)
}

func (scheduler *Scheduler) Empty() bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.RequestQueue.Empty()
}

func (scheduler *Scheduler) Size() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.RequestQueue.Size()
}
