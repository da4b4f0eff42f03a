package binance

import (
	"recyclerbot/src/cex"
)

// Factory Binance工厂实现
type Factory struct{}

// CreateClient 创建Binance客户端
func (f *Factory) CreateClient() cex.Client {
	config := &ConfigValue
	return NewClient(config.APIKey, config.SecretKey, config.BaseURL)
}

// 注册Binance工厂
func init() {
	cex.RegisterFactory("binance", &Factory{})
}
