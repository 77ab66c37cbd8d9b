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

//go:build windows || plan9

package handler

// Syslog facilities, with their POSIX values. log/syslog is not
// available on this platform.
const (
	FacilityKern     Facility = 0 << 3
	FacilityUser     Facility = 1 << 3
	FacilityMail     Facility = 2 << 3
	FacilityDaemon   Facility = 3 << 3
	FacilityAuth     Facility = 4 << 3
	FacilitySyslog   Facility = 5 << 3
	FacilityLPR      Facility = 6 << 3
	FacilityNews     Facility = 7 << 3
	FacilityUUCP     Facility = 8 << 3
	FacilityCron     Facility = 9 << 3
	FacilityAuthPriv Facility = 10 << 3
	FacilityFTP      Facility = 11 << 3
	FacilityLocal0   Facility = 16 << 3
	FacilityLocal1   Facility = 17 << 3
	FacilityLocal2   Facility = 18 << 3
	FacilityLocal3   Facility = 19 << 3
	FacilityLocal4   Facility = 20 << 3
	FacilityLocal5   Facility = 21 << 3
	FacilityLocal6   Facility = 22 << 3
	FacilityLocal7   Facility = 23 << 3
)
