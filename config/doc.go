// Package config 提供 AgentCore 的配置管理功能。
//
// 配置在进程启动时加载一次，之后不可变：默认值 → YAML → .env → 环境变量 → PORT。
package config
