// SPDX-FileCopyrightText: © 2025 LearnHub
//
// SPDX-License-Identifier: Apache-2.0

package utils

const (
	IniName            = ".learnhub.ini"
	ConfigPathEnv      = "LEARNHUB_CONFIG"
	CurrentEnvironment = "current_environment"
	UpdatedEnvKey      = "updated_environment"

	UploadBackend            = "upload_backend"
	MediaUploadHost          = "media_upload_host"
	MediaDeliveryHost        = "media_delivery_host"
	MediaAccountID           = "media_account_id"
	MediaUploadPreset        = "media_upload_preset"
	AwsAccessKeyID           = "aws_access_key_id"
	AwsSecretAccessKey       = "aws_secret_access_key"
	AwsSessionToken          = "aws_session_token"
	AwsRegion                = "aws_region"
	AwsEndpointURL           = "aws_endpoint_url"
	S3Bucket                 = "s3_bucket"
	S3PublicBaseURL          = "s3_public_base_url"
	UploadMaxAttempts        = "upload_max_attempts"
	UploadAttemptTimeout     = "upload_attempt_timeout"
	UploadBackoffStep        = "upload_backoff_step"
	UploadMultipartThreshold = "upload_multipart_threshold"
	UploadBatchConcurrency   = "upload_batch_concurrency"
)
