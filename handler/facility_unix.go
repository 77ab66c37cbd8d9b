// Copyright 2025 The Lyra Log Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build !windows && !plan9

package handler

import "log/syslog"

// Syslog facilities.
const (
	FacilityKern     = Facility(syslog.LOG_KERN)
	FacilityUser     = Facility(syslog.LOG_USER)
	FacilityMail     = Facility(syslog.LOG_MAIL)
	FacilityDaemon   = Facility(syslog.LOG_DAEMON)
	FacilityAuth     = Facility(syslog.LOG_AUTH)
	FacilitySyslog   = Facility(syslog.LOG_SYSLOG)
	FacilityLPR      = Facility(syslog.LOG_LPR)
	FacilityNews     = Facility(syslog.LOG_NEWS)
	FacilityUUCP     = Facility(syslog.LOG_UUCP)
	FacilityCron     = Facility(syslog.LOG_CRON)
	FacilityAuthPriv = Facility(syslog.LOG_AUTHPRIV)
	FacilityFTP      = Facility(syslog.LOG_FTP)
	FacilityLocal0   = Facility(syslog.LOG_LOCAL0)
	FacilityLocal1   = Facility(syslog.LOG_LOCAL1)
	FacilityLocal2   = Facility(syslog.LOG_LOCAL2)
	FacilityLocal3   = Facility(syslog.LOG_LOCAL3)
	FacilityLocal4   = Facility(syslog.LOG_LOCAL4)
	FacilityLocal5   = Facility(syslog.LOG_LOCAL5)
	FacilityLocal6   = Facility(syslog.LOG_LOCAL6)
	FacilityLocal7   = Facility(syslog.LOG_LOCAL7)
)
