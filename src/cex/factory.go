package cex

import (
	"fmt"
)

// Factory 行情客户端工厂接口
type Factory interface {
	CreateClient() Client
}

// factoryRegistry 工厂注册表
var factoryRegistry = make(map[string]Factory)

// RegisterFactory 注册行情客户端工厂
func RegisterFactory(name string, factory Factory) {
	factoryRegistry[name] = factory
}

// CreateClient 按名称创建行情客户端
func CreateClient(name string) (Client, error) {
	factory, exists := factoryRegistry[name]
	if !exists {
		return nil, fmt.Errorf("unsupported exchange: %s", name)
	}
	return factory.CreateClient(), nil
}

// GetSupportedExchanges 获取已注册的交易所列表
func GetSupportedExchanges() []string {
	var names []string
	for name := range factoryRegistry {
		names = append(names, name)
	}
	return names
}
