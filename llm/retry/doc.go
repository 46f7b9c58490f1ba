// Package retry 提供 Provider 适配器内部使用的指数退避重试。
// 重试只作用于被标记为 Retryable 的 *types.Error，最终错误原样返回。
package retry
