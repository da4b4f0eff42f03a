package binance

import (
	"github.com/xpwu/go-config/configs"
)

// Config 币安配置
type Config struct {
	APIKey    string `json:"api_key"`    // API密钥（仅公开行情可留空）
	SecretKey string `json:"secret_key"` // API私钥
	BaseURL   string `json:"base_url"`   // API地址
	Timeout   int    `json:"timeout"`    // 请求超时时间(秒)
	DBName    string `json:"db_name"`    // K线缓存数据库名称
}

// ConfigValue 币安配置实例
var ConfigValue = Config{
	APIKey:    "",
	SecretKey: "",
	BaseURL:   "https://api.binance.com",
	Timeout:   30,
	DBName:    "recyclerbot_binance",
}

func init() {
	configs.Unmarshal(&ConfigValue)
}
