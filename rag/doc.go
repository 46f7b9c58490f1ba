// Copyright 2025-2026 AgentCore Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
# 概述

Package rag 定义检索存储的能力契约（VectorStore），并提供一个进程内的
参考实现 InMemoryVectorStore。存储可以替换为任何满足契约的后端。

# 核心接口/类型

  - VectorStore — Add(ctx, text, metadata) / Search(ctx, query, limit)
  - SearchResult — 检索结果（text、score、metadata）
  - Document — 存储中的文档（uuid ID、文本、元数据、写入时间）
  - Embedder — 文本到定长向量的映射

# 相似度

默认的 HashingEmbedder 对词元与相邻二元组做 FNV-1a 特征哈希（256 维），
L2 归一化后以余弦相似度打分，结果截断到 [0, 1]。相同文本得分为 1。
检索按得分降序稳定排序，同分时保持插入顺序。

# 并发

存储只追加。Add 持写锁，Search 持读锁并在一致的快照上打分。
进程内实现不会阻塞，也不读取 ctx；ctx 留给需要 I/O 的后端。
*/
package rag
