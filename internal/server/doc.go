// 版权所有 2024 AgentCore Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 server 提供 HTTP 服务器生命周期管理：非阻塞启动、优雅关闭，
以及同时运行 API 与 metrics 两个服务器的 Run。

# 核心类型

  - Manager：封装 net/http.Server 与 net.Listener，提供
    Start/Shutdown/Errors/Addr/IsRunning。
  - Config：监听地址、读写超时、空闲超时、最大请求头与关闭超时。

Run 在 ctx 结束或任一服务器异常退出后关闭全部服务器。
信号处理由调用方通过 signal.NotifyContext 完成。
*/
package server
