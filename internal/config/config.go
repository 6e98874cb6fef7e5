package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"finhealth/internal/model"
	"finhealth/internal/service/calculator"
)

// AppConfig 应用配置
type AppConfig struct {
	Server     ServerConfig     `toml:"server"`
	Data       DataConfig       `toml:"data"`
	Log        LogConfig        `toml:"log"`
	Scoring    ScoringConfig    `toml:"scoring"`
	Extraction ExtractionConfig `toml:"extraction"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ScoringConfig 评分权重，启动时归一化一次
type ScoringConfig struct {
	NetProfitMargin   float64 `toml:"net_profit_margin"`
	ExpenseRatio      float64 `toml:"expense_ratio"`
	GrossProfitMargin float64 `toml:"gross_profit_margin"`
	FinanceCostRatio  float64 `toml:"finance_cost_ratio"`
	RevenueGrowthRate float64 `toml:"revenue_growth_rate"`
}

// Weights 转为计算器权重（未归一化，由 calculator.NewWeights 校验）
func (sc ScoringConfig) Weights() calculator.Weights {
	return calculator.Weights{
		NetProfitMargin:   sc.NetProfitMargin,
		ExpenseRatio:      sc.ExpenseRatio,
		GrossProfitMargin: sc.GrossProfitMargin,
		FinanceCostRatio:  sc.FinanceCostRatio,
		RevenueGrowthRate: sc.RevenueGrowthRate,
	}
}

// ExtractionConfig 提取配置
type ExtractionConfig struct {
	Sheet  string       `toml:"sheet"` // 为空时自动识别
	Labels LabelsConfig `toml:"labels"`
}

// LabelsConfig 各字段的候选标签，留空使用内置同义词
type LabelsConfig struct {
	TotalIncome       []string `toml:"total_income"`
	GrossProfit       []string `toml:"gross_profit"`
	AdminExpenses     []string `toml:"admin_expenses"`
	DistributionCosts []string `toml:"distribution_costs"`
	FinanceCosts      []string `toml:"finance_costs"`
	RevenueGrowth     []string `toml:"revenue_growth"`
}

// Overrides 转为按字段索引的覆盖表
func (l LabelsConfig) Overrides() map[model.Field][]string {
	out := make(map[model.Field][]string)
	add := func(f model.Field, labels []string) {
		if len(labels) > 0 {
			out[f] = labels
		}
	}
	add(model.FieldTotalIncome, l.TotalIncome)
	add(model.FieldGrossProfit, l.GrossProfit)
	add(model.FieldAdminExpenses, l.AdminExpenses)
	add(model.FieldDistributionCosts, l.DistributionCosts)
	add(model.FieldFinanceCosts, l.FinanceCosts)
	add(model.FieldRevenueGrowth, l.RevenueGrowth)
	return out
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	PortSpecified bool
	Path          string
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Log: LogConfig{
			Level: "info",
		},
		Scoring: ScoringConfig{
			NetProfitMargin:   0.196,
			ExpenseRatio:      0.202,
			GrossProfitMargin: 0.198,
			FinanceCostRatio:  0.202,
			RevenueGrowthRate: 0.202,
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo 从可执行文件同目录的 config.toml 加载配置并返回元信息
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}

	// .env 不覆盖已存在的环境变量
	_ = godotenv.Load(filepath.Join(exeDir, ".env"))

	configPath := filepath.Join(exeDir, "config.toml")
	if v := os.Getenv("FINHEALTH_CONFIG"); v != "" {
		configPath = v
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom 从指定路径加载配置，文件不存在时使用默认配置
func LoadConfigFrom(configPath string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: configPath}
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, info, err
		}
		info.Path = ""
	} else {
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, err
		}
	}

	applyEnv(config)
	return config, info, nil
}

// applyEnv 环境变量覆盖（用于容器 / 本地运行）
func applyEnv(config *AppConfig) {
	if v := os.Getenv("FINHEALTH_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("FINHEALTH_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
	if v := os.Getenv("FINHEALTH_LOG_FILE"); v != "" {
		config.Log.File = v
	}
	if v := os.Getenv("FINHEALTH_SHEET"); v != "" {
		config.Extraction.Sheet = v
	}
}

// EnsureDataDir 确保数据目录存在
// 相对路径以可执行文件所在目录为基准
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}
